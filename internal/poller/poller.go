package poller

import (
	"context"
	"time"

	"homilybot/internal/telegram"

	"go.uber.org/zap"
)

// UpdateSource fetches a batch of updates past the given cursor and
// returns the next cursor to use
type UpdateSource interface {
	FetchUpdates(offset int64) ([]telegram.Update, int64, error)
}

// MessageHandler processes one inbound message
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *telegram.Message) error
}

// Poller drives the bot: it repeatedly fetches update batches, dispatches
// every message sequentially and pauses briefly between iterations. Fetch and
// processing errors are logged and never stop the loop; a failed fetch leaves
// the cursor where it was so the same window is retried.
type Poller struct {
	source  UpdateSource
	handler MessageHandler
	pause   time.Duration
	logger  *zap.Logger
}

// New creates a poller with the given pause between iterations
func New(source UpdateSource, handler MessageHandler, pause time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		source:  source,
		handler: handler,
		pause:   pause,
		logger:  logger,
	}
}

// Run polls until the context is cancelled
func (p *Poller) Run(ctx context.Context) {
	var offset int64

	for {
		updates, next, err := p.source.FetchUpdates(offset)
		if err != nil {
			p.logger.Error("Failed to fetch updates", zap.Error(err))
		} else {
			offset = next
			for _, update := range updates {
				if update.Message == nil {
					continue
				}
				if err := p.handler.HandleMessage(ctx, update.Message); err != nil {
					p.logger.Error("Failed to process update",
						zap.Int64("update_id", update.ID),
						zap.Error(err),
					)
				}
			}
		}

		// give the server a little breath
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.pause):
		}
	}
}
