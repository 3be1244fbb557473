package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// PickLine instrucción de picking derivada de una reserva: cada reserva
// produce exactamente una línea con toda su cantidad reservada.
type PickLine struct {
	ProductID      string
	BatchID        *string
	FromLocationID string
	LocationCode   string
	ZoneType       string
	ExpiryDate     *time.Time
	QtyToPick      int64
}

// GeneratePickLines ordena las reservas de una orden con la misma cadena
// FEFO del asignador y las proyecta a líneas de picking: vencimiento
// ascendente (sin vencimiento al final), tipo de zona ascendente, código
// de ubicación ascendente. Así el recorrido físico es correcto en
// vencimientos y eficiente en ruta. Función pura: no lee ni escribe
// estado.
func GeneratePickLines(details []*repository.ReservationDetail) []PickLine {
	sorted := make([]*repository.ReservationDetail, len(details))
	copy(sorted, details)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate != nil:
			return false
		case a.ExpiryDate != nil && b.ExpiryDate == nil:
			return true
		case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if a.ZoneType != b.ZoneType {
			return a.ZoneType < b.ZoneType
		}
		return a.LocationCode < b.LocationCode
	})

	lines := make([]PickLine, 0, len(sorted))
	for _, d := range sorted {
		lines = append(lines, PickLine{
			ProductID:      d.Reservation.ProductID,
			BatchID:        d.Reservation.BatchID,
			FromLocationID: d.Reservation.LocationID,
			LocationCode:   d.LocationCode,
			ZoneType:       d.ZoneType,
			ExpiryDate:     d.ExpiryDate,
			QtyToPick:      d.Reservation.QtyReserved,
		})
	}
	return lines
}

// PickingUseCase genera y gestiona tareas de picking por orden de salida.
type PickingUseCase struct {
	txRunner TxRunner
}

// NewPickingUseCase construye el caso de uso.
func NewPickingUseCase(txRunner TxRunner) *PickingUseCase {
	return &PickingUseCase{txRunner: txRunner}
}

// GeneratePicks crea la tarea de picking de una orden a partir de sus
// reservas, una sola vez (si ya existe, la devuelve sin tocar nada).
// Sin reservas no hay nada que pickear: ErrConflict.
func (uc *PickingUseCase) GeneratePicks(ctx context.Context, outboundID string) (*entity.PickingTask, error) {
	if outboundID == "" {
		return nil, domain.ErrInvalidInput
	}
	var task *entity.PickingTask
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.BalanceRepository,
		resRepo repository.ReservationRepository,
		pickRepo repository.PickingRepository,
	) error {
		existing, err := pickRepo.GetTaskByOutbound(outboundID)
		if err != nil {
			return err
		}
		if existing != nil {
			task = existing
			return nil
		}

		details, err := resRepo.ListByOutbound(outboundID)
		if err != nil {
			return err
		}
		if len(details) == 0 {
			return domain.ErrConflict
		}

		task = &entity.PickingTask{
			ID:         uuid.New().String(),
			OutboundID: outboundID,
			Status:     entity.PickingStatusOpen,
			CreatedAt:  time.Now(),
		}
		if err := pickRepo.CreateTask(task); err != nil {
			return err
		}
		for _, line := range GeneratePickLines(details) {
			l := &entity.PickingTaskLine{
				PickingTaskID:  task.ID,
				ProductID:      line.ProductID,
				BatchID:        line.BatchID,
				FromLocationID: line.FromLocationID,
				QtyToPick:      line.QtyToPick,
			}
			if err := pickRepo.CreateLine(l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTaskWithLines devuelve la tarea de una orden con sus líneas en
// orden de recorrido; tarea nil si la orden aún no tiene tarea.
func (uc *PickingUseCase) GetTaskWithLines(ctx context.Context, outboundID string) (*entity.PickingTask, []*entity.PickingTaskLine, error) {
	var task *entity.PickingTask
	var lines []*entity.PickingTaskLine
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.BalanceRepository,
		_ repository.ReservationRepository,
		pickRepo repository.PickingRepository,
	) error {
		t, err := pickRepo.GetTaskByOutbound(outboundID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		task = t
		lines, err = pickRepo.ListLines(t.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return task, lines, nil
}

// StartTask marca la tarea en progreso y la asigna al operario.
func (uc *PickingUseCase) StartTask(ctx context.Context, taskID, userID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.BalanceRepository,
		_ repository.ReservationRepository,
		pickRepo repository.PickingRepository,
	) error {
		t, err := pickRepo.GetTask(taskID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		return pickRepo.UpdateTaskStatus(taskID, entity.PickingStatusInProgress, &userID, nil)
	})
}

// CompleteTask cierra la tarea cuando todas sus líneas son terminales.
func (uc *PickingUseCase) CompleteTask(ctx context.Context, taskID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		_ repository.BalanceRepository,
		_ repository.ReservationRepository,
		pickRepo repository.PickingRepository,
	) error {
		t, err := pickRepo.GetTask(taskID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		lines, err := pickRepo.ListLines(taskID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if !l.Done() {
				return domain.ErrConflict
			}
		}
		now := time.Now()
		return pickRepo.UpdateTaskStatus(taskID, entity.PickingStatusDone, t.AssignedUserID, &now)
	})
}
