package service

import (
	"time"

	"github.com/momentumhq/momentum/internal/model"
	"github.com/momentumhq/momentum/internal/repository"
)

type ExportService struct {
	cycleRepo    repository.CycleRepository
	goalRepo     repository.GoalRepository
	checkInRepo  repository.CheckInRepository
	categoryRepo repository.CategoryRepository
}

func NewExportService(
	cycleRepo repository.CycleRepository,
	goalRepo repository.GoalRepository,
	checkInRepo repository.CheckInRepository,
	categoryRepo repository.CategoryRepository,
) *ExportService {
	return &ExportService{
		cycleRepo:    cycleRepo,
		goalRepo:     goalRepo,
		checkInRepo:  checkInRepo,
		categoryRepo: categoryRepo,
	}
}

type CycleExport struct {
	Cycle    *model.Cycle           `json:"cycle"`
	Goals    []*model.Goal          `json:"goals"`
	CheckIns []*model.WeeklyCheckIn `json:"checkIns"`
}

type Export struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Categories []*model.Category `json:"categories"`
	Cycles     []CycleExport     `json:"cycles"`
}

// Export collects everything the user owns, archived included, into a
// single snapshot for download.
func (s *ExportService) Export(userID string, now time.Time) (*Export, error) {
	categories, err := s.categoryRepo.Categories(userID)
	if err != nil {
		return nil, err
	}

	cycles, err := s.cycleRepo.Cycles(userID, true)
	if err != nil {
		return nil, err
	}

	export := &Export{
		ExportedAt: now,
		Categories: categories,
	}

	for _, cycle := range cycles {
		goals, err := s.goalRepo.ByCycle(userID, cycle.ID, true)
		if err != nil {
			return nil, err
		}

		checkIns, err := s.checkInRepo.ByCycle(userID, cycle.ID)
		if err != nil {
			return nil, err
		}

		export.Cycles = append(export.Cycles, CycleExport{
			Cycle:    cycle,
			Goals:    goals,
			CheckIns: checkIns,
		})
	}

	return export, nil
}
