package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/utils"
)

// EmployeeStore 是导入员工时需要用到的存储操作
type EmployeeStore interface {
	GetEmployeeByUsername(username string) (*domain.Employee, error)
	CreateEmployee(e *domain.Employee) error
}

var requiredHeaders = []string{"姓名", "NetID", "邮箱", "团队"}

// ParseEmployeesCSV 读取员工表，角色列可以省略，省略时为普通员工
func ParseEmployeesCSV(r io.Reader, passwordHash string) ([]*domain.Employee, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))] = i
	}
	for _, header := range requiredHeaders {
		if _, ok := index[header]; !ok {
			return nil, fmt.Errorf("没有找到 %s 列", header)
		}
	}

	employees := make([]*domain.Employee, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("第 %d 行读取失败: %w", line, err)
		}

		get := func(header string) string {
			i, ok := index[header]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		username := get("NetID")
		if username == "" {
			return nil, fmt.Errorf("第 %d 行缺少 NetID", line)
		}

		team, err := strconv.Atoi(get("团队"))
		if err != nil {
			return nil, fmt.Errorf("第 %d 行的团队不是数字", line)
		}
		if err := utils.ValidateTeamNumber(int32(team)); err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", line, err)
		}

		role := domain.Role(get("角色"))
		switch role {
		case "":
			role = domain.RoleEmployee
		case domain.RoleAdmin, domain.RoleEmployee:
		default:
			return nil, fmt.Errorf("第 %d 行的角色 %s 无效", line, role)
		}

		employees = append(employees, &domain.Employee{
			Username:     username,
			PasswordHash: passwordHash,
			FullName:     get("姓名"),
			Email:        get("邮箱"),
			Role:         role,
			Team:         int32(team),
		})
	}

	return employees, nil
}

// ImportEmployees 导入员工，已存在的用户名会被跳过
func ImportEmployees(store EmployeeStore, employees []*domain.Employee) (created int, skipped int) {
	for _, e := range employees {
		if _, err := store.GetEmployeeByUsername(e.Username); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("获取员工失败", "username", e.Username, "error", err)
			skipped++
			continue
		}

		if err := store.CreateEmployee(e); err != nil {
			slog.Error("插入员工失败", "username", e.Username, "error", err)
			skipped++
			continue
		}
		created++
	}

	return created, skipped
}

func SeedEmployeesFromCSV(store EmployeeStore, path string, passwordHash string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	employees, err := ParseEmployeesCSV(file, passwordHash)
	if err != nil {
		return err
	}

	created, skipped := ImportEmployees(store, employees)
	slog.Info("导入员工完成", "created", created, "skipped", skipped)

	return nil
}
