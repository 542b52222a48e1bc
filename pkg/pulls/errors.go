package pulls

import "errors"

var (
	// ErrNoConnector is returned when an operation runs on a value that
	// was built without a connector or repository context.
	ErrNoConnector = errors.New("pulls: no connector configured")

	// ErrRepositoryRequired is returned when a query executes before a
	// repository was set.
	ErrRepositoryRequired = errors.New(`pulls: repository is required, call Repository("owner/repo") first`)

	ErrInvalidRepository = errors.New("pulls: invalid repository")

	// ErrReviewEventRequired is returned by ReviewBuilder.Submit when no
	// approve, request changes or comment event was chosen.
	ErrReviewEventRequired = errors.New("pulls: review event is required, call Approve, RequestChanges or Comment first")

	ErrInvalidPullRequest = errors.New("pulls: title, head and base are required")

	ErrMissingHeadSHA = errors.New("pulls: pull request has no head sha")
)
