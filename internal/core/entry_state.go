package core

import (
	"fmt"

	"fieldops.service/internal/core/model"
)

// Status actions offered per entry mode. The entry screen disables
// everything else.
var (
	freeActions    = []model.StatusCode{model.StatusStart}
	workingActions = []model.StatusCode{
		model.StatusPartsWait,
		model.StatusBreak,
		model.StatusFinished,
		model.StatusPause,
		model.StatusEndOfShift,
	}
	pausedActions = []model.StatusCode{
		model.StatusResume,
		model.StatusFinished,
		model.StatusEndOfShift,
	}
)

// DeriveEntryState is the pure transition function of the entry surface. It
// looks only at the employee's single most recent status event (or its
// absence) and decides the mode, the work-order prefill, the field locking
// and the advisory notice.
//
//	latest code      mode      work-order field
//	none             Free      cleared
//	1, 4             Working   prefilled, locked
//	2, 3             Paused    prefilled, locked
//	6, 7             Free      prefilled so the same order can resume, unlocked
//	5                Free      cleared
func DeriveEntryState(latest *model.StatusEvent) model.EntryState {
	if latest == nil {
		return model.EntryState{Mode: model.ModeFree, AllowedActions: freeActions}
	}

	switch code := latest.StatusCode; {
	case code.OpensInterval():
		return model.EntryState{
			Mode:         model.ModeWorking,
			WorkOrderID:  latest.WorkOrderID,
			FieldsLocked: true,
			Advisory: &model.Advisory{
				Title:  "Work Order In Progress",
				Detail: fmt.Sprintf("Work order %s started.", latest.WorkOrderID),
			},
			AllowedActions: workingActions,
		}
	case code == model.StatusPartsWait || code == model.StatusBreak:
		return model.EntryState{
			Mode:         model.ModePaused,
			WorkOrderID:  latest.WorkOrderID,
			FieldsLocked: true,
			Advisory: &model.Advisory{
				Title:  "Work Order Paused",
				Detail: "Waiting for resume.",
			},
			AllowedActions: pausedActions,
		}
	case code == model.StatusPause || code == model.StatusEndOfShift:
		// Smart resumption: keep the work order prefilled so the technician
		// can pick the same order back up with a single Start.
		lastRecord := "pause"
		if code == model.StatusEndOfShift {
			lastRecord = "end of shift"
		}
		return model.EntryState{
			Mode:        model.ModeFree,
			WorkOrderID: latest.WorkOrderID,
			Advisory: &model.Advisory{
				Title:  "Ready To Resume",
				Detail: fmt.Sprintf("Last record: %s. Press Start to continue.", lastRecord),
			},
			AllowedActions: freeActions,
		}
	default:
		// Finished: the order is done for this employee, start fresh.
		return model.EntryState{Mode: model.ModeFree, AllowedActions: freeActions}
	}
}
