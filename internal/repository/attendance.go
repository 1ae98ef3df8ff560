package repository

import (
	"time"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
)

const attendanceSelect = `
	SELECT a.id, a.employee_id, e.full_name, a.work_date, a.week_index, a.team, a.shift, a.status, a.note, a.created_at, a.version
	FROM attendance_records a
	JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row rowScanner) (*domain.AttendanceRecord, error) {
	a := &domain.AttendanceRecord{}
	dst := []any{&a.ID, &a.EmployeeID, &a.EmployeeName, &a.WorkDate, &a.WeekIndex, &a.Team, &a.Shift, &a.Status, &a.Note, &a.CreatedAt, &a.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return a, nil
}

// 日期按照其所在时区的日历日期写入 DATE 列
func civilDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// InsertScheduledAttendances 在同一个事务中写入排班记录，已存在的 (员工, 日期) 会被跳过，返回实际写入的条数
func (r *Repository) InsertScheduledAttendances(records []*domain.AttendanceRecord) (int64, error) {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO attendance_records (employee_id, work_date, week_index, team, shift, status)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		ON CONFLICT (employee_id, work_date) DO NOTHING
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, record := range records {
		args := []any{record.EmployeeID, civilDate(record.WorkDate), record.WeekIndex, record.Team, record.Shift, domain.AttendanceScheduled}
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *Repository) GetAttendancesByDate(date time.Time) ([]*domain.AttendanceRecord, error) {
	query := attendanceSelect + `WHERE a.work_date = $1::date ORDER BY a.team, e.id`
	return r.listAttendances(query, civilDate(date))
}

func (r *Repository) GetAttendancesByEmployee(employeeID int64, from, to time.Time) ([]*domain.AttendanceRecord, error) {
	query := attendanceSelect + `WHERE a.employee_id = $1 AND a.work_date BETWEEN $2::date AND $3::date ORDER BY a.work_date`
	return r.listAttendances(query, employeeID, civilDate(from), civilDate(to))
}

func (r *Repository) listAttendances(query string, args ...any) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetAttendanceByID(id int64) (*domain.AttendanceRecord, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	return scanAttendance(r.dbpool.QueryRowContext(ctx, attendanceSelect+`WHERE a.id = $1`, id))
}

// UpdateAttendance 只允许修改状态和备注，版本号不匹配时返回 sql.ErrNoRows
func (r *Repository) UpdateAttendance(a *domain.AttendanceRecord) error {
	query := `
		UPDATE attendance_records
		SET
			status = $1,
			note = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query, a.Status, a.Note, a.ID, a.Version).Scan(&a.Version)
}

func (r *Repository) DeleteAttendance(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	return err
}
