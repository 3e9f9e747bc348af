package domain

import "context"

// ServicePort defines the service contract for speeches
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]Speech, error)
	Filters(ctx context.Context) (Filters, error)
}
