package module

import "parliametrics/internal/services/seed/domain"

// Ports defines seed module ports exposed via the registry
type Ports struct {
	Runner domain.RunnerPort
	Source domain.SourcePort
}
