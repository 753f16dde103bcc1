// Package metaerr attaches structured key/value metadata to errors, so that
// context gathered deep in a call chain can be logged once at the top.
package metaerr

import "errors"

type metaError struct {
	err  error
	meta []any
}

func (e *metaError) Error() string {
	return e.err.Error()
}

func (e *metaError) Unwrap() error {
	return e.err
}

// WithMetadata annotates err with alternating key/value pairs.
// It returns nil if err is nil.
func WithMetadata(err error, keyvals ...any) error {
	if err == nil {
		return nil
	}
	return &metaError{err: err, meta: keyvals}
}

// GetMetadata collects the key/value pairs attached anywhere in err's chain,
// outermost first. The result is suitable for slog's With.
func GetMetadata(err error) []any {
	var meta []any
	for err != nil {
		var me *metaError
		if errors.As(err, &me) {
			meta = append(meta, me.meta...)
			err = me.err
			continue
		}
		err = errors.Unwrap(err)
	}
	return meta
}
