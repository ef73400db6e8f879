package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"yorkhub/internal/adapters/persistence/models"
	"yorkhub/internal/adapters/persistence/repositories"
	"yorkhub/internal/config"

	"github.com/robfig/cron/v3"
)

// CronService mails moderators a daily digest of suggestions awaiting
// review
type CronService struct {
	cron         *cron.Cron
	resourceRepo repositories.ResourceRepository
	userRepo     repositories.UserRepository
	mailer       Mailer
	cfg          *config.Config
}

// NewCronService creates a new cron service
func NewCronService(
	resourceRepo repositories.ResourceRepository,
	userRepo repositories.UserRepository,
	mailer Mailer,
	cfg *config.Config,
) *CronService {
	return &CronService{
		cron:         cron.New(),
		resourceRepo: resourceRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		cfg:          cfg,
	}
}

// Start schedules the digest job
func (s *CronService) Start() {
	if !s.cfg.Digest.Enabled {
		log.Println("ℹ️ Pending-review digest disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.cfg.Digest.CronSpec, s.sendPendingDigest); err != nil {
		log.Printf("⚠️ Failed to schedule digest job: %v", err)
		return
	}

	s.cron.Start()
	log.Printf("⏰ Pending-review digest scheduled [%s]", s.cfg.Digest.CronSpec)
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
}

// sendPendingDigest mails every admin and root the list of pending
// suggestions. Failures are logged, never fatal.
func (s *CronService) sendPendingDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := s.resourceRepo.List(ctx, models.StatusPending)
	if err != nil {
		log.Printf("⚠️ Digest: failed to list pending resources: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	moderators, err := s.userRepo.ListByMinRole(ctx, models.RoleAdmin)
	if err != nil {
		log.Printf("⚠️ Digest: failed to list moderators: %v", err)
		return
	}

	subject := fmt.Sprintf("%d resource suggestion(s) awaiting review", len(pending))
	body := s.digestBody(pending)

	for _, moderator := range moderators {
		if err := s.mailer.Send(moderator.Email, subject, body, true); err != nil {
			log.Printf("⚠️ Digest: delivery to %s failed: %v", moderator.Username, err)
		}
	}

	log.Printf("📬 Pending-review digest sent to %d moderator(s)", len(moderators))
}

func (s *CronService) digestBody(pending []*models.Resource) string {
	var b strings.Builder
	b.WriteString("<p>The following suggestions are awaiting review:</p><ul>")
	for _, resource := range pending {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s), suggested by %s</li>",
			resource.Name, resource.Category, resource.SuggestedBy)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><a href=\"%s/admin\">Open the review queue</a></p>", s.cfg.BaseURL)
	return b.String()
}
