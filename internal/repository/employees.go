package repository

import (
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
)

const employeeColumns = `id, username, password_hash, full_name, email, role, team, is_active, created_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	e := &domain.Employee{}
	dst := []any{&e.ID, &e.Username, &e.PasswordHash, &e.FullName, &e.Email, &e.Role, &e.Team, &e.IsActive, &e.CreatedAt, &e.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	return scanEmployee(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetEmployeeByUsername(username string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	return scanEmployee(r.dbpool.QueryRowContext(ctx, query, username))
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	return r.listEmployees(`SELECT ` + employeeColumns + ` FROM employees ORDER BY id`)
}

// GetActiveEmployees 只返回在职且已分配团队的员工
func (r *Repository) GetActiveEmployees() ([]*domain.Employee, error) {
	return r.listEmployees(`SELECT ` + employeeColumns + ` FROM employees WHERE is_active AND team > 0 ORDER BY team, id`)
}

func (r *Repository) listEmployees(query string, args ...any) ([]*domain.Employee, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(e *domain.Employee) error {
	query := `
		INSERT INTO employees (username, password_hash, full_name, email, role, team)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{e.Username, e.PasswordHash, e.FullName, e.Email, e.Role, e.Team}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.IsActive, &e.CreatedAt, &e.Version)
}

// UpdateEmployee 使用乐观锁，版本号不匹配时返回 sql.ErrNoRows
func (r *Repository) UpdateEmployee(e *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			role = $4,
			team = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING username, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{e.PasswordHash, e.FullName, e.Email, e.Role, e.Team, e.IsActive, e.ID, e.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.Username, &e.CreatedAt, &e.Version)
}

func (r *Repository) DeleteEmployee(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	return err
}
