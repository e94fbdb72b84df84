package stately

import "github.com/google/uuid"

// Option configures a machine during construction
type Option func(*options)

type options struct {
	throws    bool
	id        string
	observers []Observer
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return o
}

// WithThrows selects the error policy: when true, machine errors are returned
// as the operation's Go error and the error handler is not invoked.
func WithThrows(throws bool) Option {
	return func(o *options) { o.throws = throws }
}

// WithID sets the machine instance ID. Empty IDs are ignored.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

// WithObserver registers a lifecycle observer at construction
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}
