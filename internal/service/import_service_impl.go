package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/importer"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) Import(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates, converts and writes the whole schema in one
// transaction. Records with known IDs are updated in place.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{}
	defer observeUseCase(ctx, s.observer, "import", time.Now(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	snap, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return writeSnapshot(ctx, NewSQLiteRepos(tx), snap)
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Users:       len(snap.Users),
		Projects:    len(snap.Projects),
		Members:     len(snap.Members),
		Tasks:       len(snap.Tasks),
		Allocations: len(snap.Allocations),
		Timesheets:  len(snap.Timesheets),
		Holidays:    len(snap.Holidays),
	}
	fields["users"] = result.Users
	fields["tasks"] = result.Tasks
	return result, nil
}

func writeSnapshot(ctx context.Context, repos Repos, snap *capacity.Snapshot) error {
	for i := range snap.Users {
		if err := repos.Users.Upsert(ctx, &snap.Users[i]); err != nil {
			return fmt.Errorf("writing user %q: %w", snap.Users[i].Name, err)
		}
	}
	for i := range snap.Projects {
		if err := repos.Projects.Upsert(ctx, &snap.Projects[i]); err != nil {
			return fmt.Errorf("writing project %q: %w", snap.Projects[i].Name, err)
		}
	}
	for _, m := range snap.Members {
		if err := repos.Members.Upsert(ctx, m); err != nil {
			return fmt.Errorf("writing project member: %w", err)
		}
	}
	for i := range snap.Tasks {
		if err := repos.Tasks.Upsert(ctx, &snap.Tasks[i]); err != nil {
			return fmt.Errorf("writing task %q: %w", snap.Tasks[i].Title, err)
		}
	}
	for _, a := range snap.Allocations {
		if err := repos.Allocations.Upsert(ctx, a); err != nil {
			return fmt.Errorf("writing task allocation: %w", err)
		}
	}
	for i := range snap.Timesheets {
		if err := repos.Timesheets.Create(ctx, &snap.Timesheets[i]); err != nil {
			return fmt.Errorf("writing timesheet entry: %w", err)
		}
	}
	for i := range snap.Holidays {
		if err := repos.Holidays.Upsert(ctx, &snap.Holidays[i]); err != nil {
			return fmt.Errorf("writing holiday %q: %w", snap.Holidays[i].Name, err)
		}
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.New("import validation failed:\n  - " + strings.Join(msgs, "\n  - "))
}
