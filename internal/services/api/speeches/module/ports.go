package module

import speechesdom "parliametrics/internal/services/api/speeches/domain"

// Ports defines speeches module ports
type Ports struct {
	Service speechesdom.ServicePort
}
