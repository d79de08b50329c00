package domain

import "errors"

var (
	// ErrDecode signals a price-list row that cannot be decoded.
	ErrDecode = errors.New("invalid price list row")
	// ErrNotIngested signals that no price list has been uploaded yet.
	ErrNotIngested = errors.New("price list not ingested")
	// ErrIndexBuild signals a malformed or unbuildable search index.
	ErrIndexBuild = errors.New("search index build failed")
)
