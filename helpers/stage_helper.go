package helpers

import "github.com/hivewallet/authority-api/constants"

// Deployment stages the service runs as. STAGE selects logger encoding and
// bootstrap behavior; any other value fails startup.
const (
	StageProd  = constants.ProdEnvironment
	StageDev   = "dev"
	StageLocal = "local"
)

// IsValidStage reports whether stage names a known deployment stage.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal:
		return true
	}
	return false
}
