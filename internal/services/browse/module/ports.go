package module

import "parliametrics/internal/services/browse/domain"

// Ports defines browse module ports exposed via the registry
type Ports struct {
	Catalog domain.CatalogPort
	Query   domain.QueryPort
	Archive domain.ArchivePort
}
