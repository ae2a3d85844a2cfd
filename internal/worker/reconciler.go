package worker

import (
	"log"
	"time"

	"uniarena/backend/internal/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Reconciler is the recovery pass for the workflow's non-atomic multi-step
// mutations. Lobby deletion and request approval are sequential store calls;
// an interruption can leave participant or join-request rows pointing at a
// lobby that no longer exists. The reconciler sweeps those leftovers and
// closes lobbies whose tournament has ended.
type Reconciler struct {
	db *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db}
}

// Start schedules the sweeps. Returns the scheduler so the caller can shut
// it down.
func (r *Reconciler) Start() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			r.sweepOrphans()
			r.closeFinishedTournamentLobbies()
		}),
	)
	if err != nil {
		return nil, err
	}

	return sched, nil
}

func (r *Reconciler) sweepOrphans() {
	result := r.db.Where(
		"lobby_id NOT IN (?)",
		r.db.Model(&models.Lobby{}).Select("id"),
	).Delete(&models.LobbyParticipant{})
	if result.Error != nil {
		log.Printf("[Reconciler] participant sweep failed: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("[Reconciler] removed %d orphaned participant rows", result.RowsAffected)
	}

	result = r.db.Where(
		"lobby_id NOT IN (?)",
		r.db.Model(&models.Lobby{}).Select("id"),
	).Delete(&models.JoinRequest{})
	if result.Error != nil {
		log.Printf("[Reconciler] join-request sweep failed: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("[Reconciler] removed %d orphaned join requests", result.RowsAffected)
	}
}

func (r *Reconciler) closeFinishedTournamentLobbies() {
	result := r.db.Model(&models.Lobby{}).
		Where("status = ? AND tournament_id IN (?)",
			models.LobbyStatusOpen,
			r.db.Model(&models.Tournament{}).Select("id").Where("end_date < ?", time.Now()),
		).
		Update("status", models.LobbyStatusClosed)
	if result.Error != nil {
		log.Printf("[Reconciler] lobby close failed: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("[Reconciler] closed %d lobbies of finished tournaments", result.RowsAffected)
	}
}
