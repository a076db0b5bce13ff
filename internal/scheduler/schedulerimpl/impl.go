package schedulerimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/notifier"
	"github.com/orgball2608/social-post-scheduler/internal/publisher"
	"github.com/orgball2608/social-post-scheduler/internal/repositories/post"
	"github.com/orgball2608/social-post-scheduler/internal/scheduler"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	PostRepo post.Repository
	Registry *publisher.Registry
	Notifier notifier.Client
	Logger   logger.Logger
	Config   *config.Config
}

type SchedulerImpl struct {
	PostRepo post.Repository
	Registry *publisher.Registry
	Notifier notifier.Client
	Logger   logger.Logger
	Config   *config.Config
}

func New(opts Opts) *SchedulerImpl {
	return &SchedulerImpl{
		PostRepo: opts.PostRepo,
		Registry: opts.Registry,
		Notifier: opts.Notifier,
		Logger:   opts.Logger.WithComponent("Scheduler"),
		Config:   opts.Config,
	}
}

var _ scheduler.Client = (*SchedulerImpl)(nil)

// SchedulePublishing registers the recurring publish job. The first tick runs
// immediately so posts that came due while the process was down are picked up
// without waiting a full interval.
func (s *SchedulerImpl) SchedulePublishing(ctx context.Context) error {
	interval := time.Duration(s.Config.Scheduler.IntervalSeconds) * time.Second

	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("failed to create publish scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				s.Logger.Info("Context cancelled, stopping publish job")
				return
			}
			s.ProcessDuePosts(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule publish job: %w", err)
	}

	sched.Start()
	s.Logger.Info("Publish scheduler started", "interval", interval.String())

	go func() {
		<-ctx.Done()
		s.Logger.Info("Stopping publish scheduler")
		if err := sched.Shutdown(); err != nil {
			s.Logger.Error("Failed to shut down publish scheduler", "error", err)
		}
	}()

	return nil
}

// ProcessDuePosts runs one tick. A store read failure aborts the whole tick;
// anything that goes wrong with an individual post is contained to that post.
func (s *SchedulerImpl) ProcessDuePosts(ctx context.Context) {
	now := time.Now().UTC()

	posts, err := s.PostRepo.ListByStatus(ctx, domain.StatusScheduled)
	if err != nil {
		s.Logger.Error("Failed to fetch scheduled posts", "error", err)
		s.Notifier.SendMessage(fmt.Sprintf("Publish tick aborted, could not fetch scheduled posts: %v", err))
		return
	}

	var due []*domain.ScheduledPost
	for _, p := range posts {
		if p.IsDue(now) {
			due = append(due, p)
		}
	}

	if len(due) == 0 {
		s.Logger.Debug("No posts due for publishing", "scheduled", len(posts))
		return
	}

	s.Logger.Info("Found posts due for publishing", "due", len(due), "scheduled", len(posts))
	for _, p := range due {
		s.dispatch(ctx, p)
	}
}

func (s *SchedulerImpl) dispatch(ctx context.Context, p *domain.ScheduledPost) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("Panic while publishing post", "post_id", p.ID, "platform", p.Platform, "panic", r)
		}
	}()

	pub, ok := s.Registry.For(p.Platform)
	if !ok {
		// No terminal write here: the post stays scheduled so a build that
		// knows the platform can pick it up later.
		s.Logger.Error("No publisher registered for platform", "post_id", p.ID, "platform", p.Platform)
		return
	}

	s.Logger.Info("Publishing due post", "post_id", p.ID, "platform", p.Platform, "scheduled_time", p.ScheduledTime)

	result := pub.Publish(ctx, p)
	if result.Success {
		s.Logger.Info("Post published", "post_id", p.ID, "platform", p.Platform, "external_id", result.ExternalID)
		return
	}

	s.Logger.Error("Failed to publish post", "post_id", p.ID, "platform", p.Platform, "error", result.Error)
	s.Notifier.NotifyPublishFailure(p, result.Error)
}
