package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyComment indicates the user submitted a draft with neither text nor image.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the draft exceeds the character limit.
	ErrCommentTooLong = errors.New("comment exceeds character limit")

	// ErrPageOutOfOrder indicates a page request that is neither page 0 nor the next page.
	ErrPageOutOfOrder = errors.New("page requested out of order")

	// ErrScopeBusy indicates a page fetch is already in flight for the scope.
	ErrScopeBusy = errors.New("scope fetch already in flight")

	// ErrMissingID indicates a record arrived without any usable identifier.
	ErrMissingID = errors.New("record has no id")
)
