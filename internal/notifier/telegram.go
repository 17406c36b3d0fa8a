package notifier

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/events"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
	"strings"
)

const latestJobsCount = 5

type sender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

type jobsSource interface {
	List(ctx context.Context, creds backend.Credentials, query backend.JobsQuery) (backend.JobsPage, error)
}

// Telegram posts job board activity to the admin chat and answers a
// couple of commands sent from that chat.
type Telegram struct {
	api     sender
	bot     *botApi.BotAPI
	chatID  int64
	jobs    jobsSource
	siteURL string
}

func NewTelegram(token string, chatID int64, jobs jobsSource, siteURL string) (*Telegram, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	t := newTelegram(api, chatID, jobs, siteURL)
	t.bot = api
	return t, nil
}

func newTelegram(api sender, chatID int64, jobs jobsSource, siteURL string) *Telegram {
	return &Telegram{api: api, chatID: chatID, jobs: jobs, siteURL: strings.TrimRight(siteURL, "/")}
}

// Subscribe registers async handlers so a slow Telegram never delays a request.
func (t *Telegram) Subscribe(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(events.JobCreatedTopic, t.onJobCreated, false); err != nil {
		return err
	}
	if err := bus.SubscribeAsync(events.JobDeletedTopic, t.onJobDeleted, false); err != nil {
		return err
	}
	return bus.SubscribeAsync(events.ContactSubmittedTopic, t.onContactSubmitted, false)
}

// Run handles commands from the admin chat until ctx is done.
func (t *Telegram) Run(ctx context.Context) {
	if t.bot == nil {
		return
	}

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := t.bot.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil || update.Message.Chat.ID != t.chatID {
				continue
			}
			if command := update.Message.Command(); command != "" {
				go t.handleCommand(ctx, command)
			}
		}
	}
}

func (t *Telegram) handleCommand(ctx context.Context, command string) {

	var text string
	switch command {
	case "start", "help":
		text = "Namaste Jobs admin notifications are on.\n/latest - newest jobs"
	case "latest":
		text = t.latestJobsText(ctx)
	default:
		text = "Unknown command!"
	}

	t.send(text)
}

func (t *Telegram) latestJobsText(ctx context.Context) string {
	page, err := t.jobs.List(ctx, nil, backend.JobsQuery{Page: 1, Limit: latestJobsCount})
	if err != nil {
		return "Couldn't load jobs: " + backend.MessageOf(err)
	}
	if len(page.Jobs) == 0 {
		return "No jobs posted yet."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Latest jobs (%d total):\n", page.TotalJobs)
	for _, job := range page.Jobs {
		fmt.Fprintf(&sb, "- %s @ %s, %s\n  %s\n", job.Title, job.Company, job.Location, t.jobURL(job.ID))
	}
	return sb.String()
}

func (t *Telegram) onJobCreated(event events.JobCreated) {
	t.send(fmt.Sprintf("New job posted: %s @ %s (%s, %s)\n%s",
		event.Job.Title, event.Job.Company, event.Job.Location, event.Job.Category, t.jobURL(event.Job.ID)))
}

func (t *Telegram) onJobDeleted(event events.JobDeleted) {
	t.send(fmt.Sprintf("Job %s was deleted", event.JobID))
}

func (t *Telegram) onContactSubmitted(event events.ContactSubmitted) {
	t.send(fmt.Sprintf("New contact message from %s <%s>: %s", event.Name, event.Email, event.Subject))
}

func (t *Telegram) jobURL(id string) string {
	return t.siteURL + "/jobs/" + id
}

func (t *Telegram) send(text string) {
	if _, err := t.api.Send(botApi.NewMessage(t.chatID, text)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
	}
}
