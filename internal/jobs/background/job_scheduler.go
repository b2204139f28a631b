package background

import (
	"context"
	"log"
	"sync"
	"time"

	"roomlink/internal/analytics"
	"roomlink/internal/caching"
	"roomlink/internal/models"
	"roomlink/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobScheduler runs the periodic background work: keeping owner dashboards
// warm and sweeping the room cache.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	dashboardSvc *analytics.DashboardService
	cacheSvc     caching.CacheService
	profileRepo  repositories.ProfileRepository
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(dashboardSvc *analytics.DashboardService, cacheSvc caching.CacheService,
	profileRepo repositories.ProfileRepository) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		dashboardSvc: dashboardSvc,
		cacheSvc:     cacheSvc,
		profileRepo:  profileRepo,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Dashboard refresh - every 5 minutes
	dashboardJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshOwnerDashboards, context.Background()),
		gocron.WithName("owner-dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobs["dashboard-refresh"] = dashboardJob
	}

	// Room cache sweep - every hour. Listings deactivated directly in the
	// store would otherwise serve stale from cache until TTL.
	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepRoomCache),
		gocron.WithName("room-cache-sweep"),
	)
	if err != nil {
		log.Printf("Failed to create room cache sweep job: %v", err)
	} else {
		js.jobs["room-cache-sweep"] = cacheJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshOwnerDashboards recomputes dashboard aggregates for all owners so
// the first dashboard view after a quiet period is still a cache hit.
func (js *JobScheduler) refreshOwnerDashboards(ctx context.Context) error {
	log.Printf("Starting owner dashboard refresh")

	owners, err := js.profileRepo.ListByRole(ctx, models.RoleOwner, 1000, 0)
	if err != nil {
		log.Printf("Failed to list owners for dashboard refresh: %v", err)
		return err
	}

	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, owner := range owners {
		wg.Add(1)
		go func(ownerID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := js.dashboardSvc.RefreshOwnerDashboard(ctx, ownerID); err != nil {
				log.Printf("Failed to refresh dashboard for owner %s: %v", ownerID.String(), err)
			}
		}(owner.ID)
	}

	wg.Wait()
	log.Printf("Completed dashboard refresh for %d owners", len(owners))
	return nil
}

// sweepRoomCache drops all cached rooms; the next read repopulates them.
func (js *JobScheduler) sweepRoomCache() error {
	log.Printf("Starting room cache sweep")
	if err := js.cacheSvc.InvalidateRooms(context.Background()); err != nil {
		log.Printf("Room cache sweep failed: %v", err)
		return err
	}
	log.Printf("Room cache sweep completed")
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}

	return nil
}
