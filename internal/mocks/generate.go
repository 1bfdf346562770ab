// Package mocks provides mock implementations for testing the portal's
// repository interfaces.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// our repository interfaces. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockInquiryRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(inquiry, nil)
package mocks

// Generate mock for PrincipalRepository interface from internal/core package.
// This creates MockPrincipalRepository with methods for all PrincipalRepository interface methods:
// Create, GetByID, GetByUsername, List, UpdateRole
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=principal_repository_mock.go github.com/copperline/bizportal/internal/core PrincipalRepository

// Generate mock for InquiryRepository interface from internal/core package.
// This creates MockInquiryRepository with methods for all InquiryRepository interface methods:
// Create, GetByID, List, MarkImported
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=inquiry_repository_mock.go github.com/copperline/bizportal/internal/core InquiryRepository
