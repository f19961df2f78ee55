package form

import (
	"context"
	"fmt"
)

// Kind discriminates the outcome of a submission.
type Kind int

const (
	Success         Kind = iota // Service replied with the success title.
	ValidationError             // Rejected locally before any request.
	BusinessError               // Service replied, but not with the success title.
	TransportError              // Request or reply decoding failed.
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case ValidationError:
		return "validation"
	case BusinessError:
		return "business"
	case TransportError:
		return "transport"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SuccessTitle is the reply title that marks an account as created.
const SuccessTitle = "Success"

// Result is the outcome of one submission.
type Result struct {
	Kind  Kind
	Title string // Reply title for Success and BusinessError.
	Err   error  // Set for TransportError.
}

// Reply is what the user service answered.
type Reply struct {
	Title string
}

// Creator sends a create-user request carrying the whole form.
type Creator interface {
	Create(ctx context.Context, body State) (Reply, error)
}

// CreatorFunc adapts a function to Creator.
type CreatorFunc func(ctx context.Context, body State) (Reply, error)

// Create calls f.
func (f CreatorFunc) Create(ctx context.Context, body State) (Reply, error) {
	return f(ctx, body)
}

// Classify maps a service reply or error to a Result.
func Classify(r Reply, err error) Result {
	if err != nil {
		return Result{Kind: TransportError, Err: err}
	}
	if r.Title == SuccessTitle {
		return Result{Kind: Success, Title: r.Title}
	}
	return Result{Kind: BusinessError, Title: r.Title}
}
