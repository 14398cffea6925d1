package agent

import "errors"

var (
	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrPipelineRequired is returned when an extraction pipeline is not provided.
	ErrPipelineRequired = errors.New("extraction pipeline required")

	// ErrRepositoryRequired is returned when a company repository is not provided.
	ErrRepositoryRequired = errors.New("company repository required")
)
