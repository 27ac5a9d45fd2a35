// Package notion mirrors project progress into a Notion database so agents
// can track customers without opening the backoffice.
package notion

import (
	"context"
	"fmt"
	"time"

	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/repository/unitofwork"

	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"
)

// Syncer periodically upserts one Notion page per project: customer name,
// current round, completion state and how many distinct source documents
// were ingested. Notion is a mirror, never a source of truth; sync failures
// only log.
type Syncer struct {
	client     *notionapi.Client
	databaseId notionapi.DatabaseID
	uowFactory unitofwork.RepositoryFactory
	interval   time.Duration
	logger     logger.ILogger

	// Notion allows 3 req/s per integration.
	limiter *rate.Limiter

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSyncer(
	token string,
	databaseId string,
	uowFactory unitofwork.RepositoryFactory,
	interval time.Duration,
	log logger.ILogger,
) *Syncer {
	return &Syncer{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseId: notionapi.DatabaseID(databaseId),
		uowFactory: uowFactory,
		interval:   interval,
		logger:     log,
		limiter:    rate.NewLimiter(3, 1),
	}
}

// Start launches the sync loop. Call Stop to terminate it.
func (s *Syncer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// First pass immediately, then on the ticker.
		s.syncOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.syncOnce(ctx)
			}
		}
	}()
}

func (s *Syncer) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Syncer) syncOnce(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx)
	if err != nil {
		s.logger.Error("NotionSyncer", "Failed to list projects", map[string]interface{}{"error": err.Error()})
		return
	}

	synced := 0
	for _, project := range projects {
		sources, err := uow.HouseRepository().CountDistinctSources(ctx, project.Id)
		if err != nil {
			s.logger.Warn("NotionSyncer", "Failed to count sources", map[string]interface{}{
				"project_id": project.Id,
				"error":      err.Error(),
			})
			continue
		}

		props := notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: []notionapi.RichText{{Text: &notionapi.Text{Content: project.Name}}},
			},
			"Project Id": notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: project.Id.String()}}},
			},
			"Round": notionapi.NumberProperty{
				Number: float64(project.CurrentRound),
			},
			"Completed": notionapi.CheckboxProperty{
				Checkbox: project.Completed,
			},
			"Documents": notionapi.NumberProperty{
				Number: float64(sources),
			},
		}

		if err := s.upsert(ctx, project.Id.String(), props); err != nil {
			s.logger.Warn("NotionSyncer", "Failed to sync project page", map[string]interface{}{
				"project_id": project.Id,
				"error":      err.Error(),
			})
			continue
		}
		synced++
	}

	s.logger.Info("NotionSyncer", "Sync pass finished", map[string]interface{}{
		"projects": len(projects),
		"synced":   synced,
	})
}

// upsert finds the page carrying the project id and updates it, creating the
// page on first sight.
func (s *Syncer) upsert(ctx context.Context, projectId string, props notionapi.Properties) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := s.client.Database.Query(ctx, s.databaseId, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Project Id",
			RichText: &notionapi.TextFilterCondition{Equals: projectId},
		},
		PageSize: 1,
	})
	if err != nil {
		return fmt.Errorf("query notion database: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if len(resp.Results) > 0 {
		_, err = s.client.Page.Update(ctx, notionapi.PageID(resp.Results[0].ID), &notionapi.PageUpdateRequest{
			Properties: props,
		})
		if err != nil {
			return fmt.Errorf("update notion page: %w", err)
		}
		return nil
	}

	_, err = s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{DatabaseID: s.databaseId},
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("create notion page: %w", err)
	}
	return nil
}
