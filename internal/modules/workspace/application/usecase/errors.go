package usecase

import "errors"

var (
	ErrEmptySearchName          = errors.New("saved search name is empty")
	ErrSavedSearchNotFound      = errors.New("saved search not found")
	ErrDefaultCategoryPermanent = errors.New("default shortlist category cannot be deleted")
	ErrInvalidCategory          = errors.New("shortlist category is empty")
	ErrMissingPlayerID          = errors.New("player id is empty")
	ErrFetchInFlight            = errors.New("catalog fetch already in flight")
	ErrCriteriaChanged          = errors.New("load more requested for criteria that are not displayed")
)
