package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.PickingRepository = (*PickingRepo)(nil)

// PickingRepo implementación de PickingRepository sobre PostgreSQL.
type PickingRepo struct {
	q Querier
}

// NewPickingRepository construye el adaptador de picking. Pasar pool o tx (Querier).
func NewPickingRepository(q Querier) *PickingRepo {
	return &PickingRepo{q: q}
}

func scanPickingTask(row pgx.Row) (*entity.PickingTask, error) {
	var t entity.PickingTask
	err := row.Scan(&t.ID, &t.OutboundID, &t.AssignedUserID, &t.Status, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan picking task: %w", err)
	}
	return &t, nil
}

// GetTask obtiene una tarea por id; nil si no existe.
func (r *PickingRepo) GetTask(id string) (*entity.PickingTask, error) {
	query := `
		SELECT id, outbound_id, assigned_user_id, status, created_at, completed_at
		FROM picking_tasks WHERE id = $1`
	return scanPickingTask(r.q.QueryRow(context.Background(), query, id))
}

// GetTaskByOutbound obtiene la tarea de una orden; nil si aún no se generó.
func (r *PickingRepo) GetTaskByOutbound(outboundID string) (*entity.PickingTask, error) {
	query := `
		SELECT id, outbound_id, assigned_user_id, status, created_at, completed_at
		FROM picking_tasks WHERE outbound_id = $1`
	return scanPickingTask(r.q.QueryRow(context.Background(), query, outboundID))
}

// CreateTask inserta la tarea.
func (r *PickingRepo) CreateTask(t *entity.PickingTask) error {
	query := `
		INSERT INTO picking_tasks (id, outbound_id, assigned_user_id, status, created_at, completed_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.OutboundID, t.AssignedUserID, t.Status, t.CreatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("create picking task: %w", err)
	}
	return nil
}

// CreateLine inserta una línea; el id serial lo asigna la DB y se
// escribe de vuelta en la entidad.
func (r *PickingRepo) CreateLine(l *entity.PickingTaskLine) error {
	query := `
		INSERT INTO picking_task_lines (
			picking_task_id, product_id, batch_id, from_location_id, qty_to_pick, qty_picked
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		l.PickingTaskID, l.ProductID, l.BatchID, l.FromLocationID, l.QtyToPick, l.QtyPicked,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("create picking line: %w", err)
	}
	return nil
}

// ListLines devuelve las líneas de una tarea en su orden de inserción,
// que es el orden de recorrido calculado al generarlas.
func (r *PickingRepo) ListLines(taskID string) ([]*entity.PickingTaskLine, error) {
	query := `
		SELECT id, picking_task_id, product_id, batch_id, from_location_id, qty_to_pick, qty_picked
		FROM picking_task_lines
		WHERE picking_task_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list picking lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.PickingTaskLine
	for rows.Next() {
		var l entity.PickingTaskLine
		if err := rows.Scan(
			&l.ID, &l.PickingTaskID, &l.ProductID, &l.BatchID,
			&l.FromLocationID, &l.QtyToPick, &l.QtyPicked,
		); err != nil {
			return nil, fmt.Errorf("scan picking line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// UpdateTaskStatus actualiza estado, asignación y cierre de la tarea.
func (r *PickingRepo) UpdateTaskStatus(id, status string, assignedTo *string, completedAt *time.Time) error {
	query := `
		UPDATE picking_tasks
		SET status = $2, assigned_user_id = $3, completed_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, assignedTo, completedAt)
	if err != nil {
		return fmt.Errorf("update picking task: %w", err)
	}
	return nil
}

// AddPicked incrementa qty_picked de la línea.
func (r *PickingRepo) AddPicked(lineID int64, qty int64) error {
	query := `UPDATE picking_task_lines SET qty_picked = qty_picked + $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lineID, qty)
	if err != nil {
		return fmt.Errorf("add picked qty: %w", err)
	}
	return nil
}
