package closure

import (
	"context"

	"github.com/ErikGranda885/restocaja/internal/common"
	"github.com/ErikGranda885/restocaja/internal/interfaces"
	"github.com/ErikGranda885/restocaja/internal/models"
)

// Compile-time interface check
var _ interfaces.Notifier = (*LogNotifier)(nil)

// LogNotifier records closure changes in the log. Collaborating layers that
// push updates to clients replace it with their own transport.
type LogNotifier struct {
	logger *common.Logger
}

// NewLogNotifier creates a notifier that logs every closure change.
func NewLogNotifier(logger *common.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ClosureChanged(ctx context.Context, record *models.ClosureRecord, event string) {
	n.logger.Info().
		Str("date", record.Date.String()).
		Str("event", event).
		Str("status", string(record.Status)).
		Str("variance", record.Variance.String()).
		Msg("Closure changed")
}
