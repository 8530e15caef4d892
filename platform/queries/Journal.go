package queries

import (
	"context"
	"sync"

	"github.com/DedS3t/speculation-backend/app/game"
	"github.com/DedS3t/speculation-backend/app/models"
	"github.com/go-pg/pg/v10"
	"github.com/sirupsen/logrus"
)

const journalBatch = 32

type EventStore interface {
	InsertEvents(ctx context.Context, records []*models.EventRecord) error
}

type PGEventStore struct {
	DB *pg.DB
}

func (s PGEventStore) InsertEvents(ctx context.Context, records []*models.EventRecord) error {
	_, err := s.DB.ModelContext(ctx, &records).Insert()
	return err
}

// Journal appends every event of one game to the store. Writes happen on a
// background goroutine so observers never wait on the database.
type Journal struct {
	gameID string
	store  EventStore
	log    logrus.FieldLogger

	mu     sync.Mutex
	seq    int
	closed bool
	queue  chan *models.EventRecord
	done   chan struct{}
}

var _ game.Observer = (*Journal)(nil)

func NewJournal(gameID string, store EventStore, log logrus.FieldLogger) *Journal {
	if log == nil {
		log = logrus.StandardLogger()
	}
	j := &Journal{
		gameID: gameID,
		store:  store,
		log:    log.WithField("game_id", gameID),
		queue:  make(chan *models.EventRecord, 256),
		done:   make(chan struct{}),
	}
	go j.run()
	return j
}

func (j *Journal) OnEvent(_ context.Context, ev game.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	j.seq++
	j.queue <- models.NewEventRecord(j.gameID, j.seq, ev)
}

// Close flushes queued events and stops the writer.
func (j *Journal) Close() {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.queue)
	}
	j.mu.Unlock()
	<-j.done
}

func (j *Journal) run() {
	defer close(j.done)

	for rec := range j.queue {
		batch := []*models.EventRecord{rec}
	drain:
		for len(batch) < journalBatch {
			select {
			case next, ok := <-j.queue:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}

		if err := j.store.InsertEvents(context.Background(), batch); err != nil {
			j.log.WithError(err).WithField("events", len(batch)).Error("journal write failed")
		}
	}
}
