package dataset

import "errors"

// Common error types used across the dataset package
var (
	ErrInvalidSplit    = errors.New("split must be one of train, val, test")
	ErrIndexOutOfRange = errors.New("index out of range for active split")
	ErrEmptyDataset    = errors.New("dataset contains no records")
	ErrNilVectorizer   = errors.New("vectorizer cannot be nil")
)
