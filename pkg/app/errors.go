package app

import "errors"

var (
	// ErrPageNotFound is returned for a path the app does not define.
	ErrPageNotFound = errors.New("app: page not found")
	// ErrNotForm is returned when submitting to a page that is not a form.
	ErrNotForm = errors.New("app: page is not a form")
	// ErrDuplicatePage is returned when two pages share a path.
	ErrDuplicatePage = errors.New("app: duplicate page path")
)
