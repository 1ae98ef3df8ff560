package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/rotation"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/seed"
	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "time/tzdata"
)

func main() {
	var op int
	var n int
	var from, to string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 按轮班日历生成排班记录, 3: 从 CSV 导入员工)")
	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.StringVar(&from, "from", "", "生成排班记录的开始日期，例如 2025-09-08")
	flag.StringVar(&to, "to", "", "生成排班记录的结束日期，为空时与开始日期相同")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		logger.Error("未指定操作")
	case 1:
		if n <= 0 {
			logger.Error("请输入合法的员工数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			employee, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, cfg.Email.UserDomain)
			if err != nil {
				logger.Error("无法生成随机员工", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateEmployee(employee); err != nil {
				logger.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		logger.Info("插入员工成功", slog.Int("count", cnt))
	case 2:
		autoFill(logger, cfg, repo, from, to)
	case 3:
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.Employee.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("无法生成密码哈希", slog.String("error", err.Error()))
			return
		}

		if err := seed.SeedEmployeesFromCSV(repo, cfg.Seed.CSVPath, string(passwordHash)); err != nil {
			logger.Error("导入员工失败", slog.String("path", cfg.Seed.CSVPath), slog.String("error", err.Error()))
		}
	default:
		logger.Error("指定的操作非法")
	}
}

func autoFill(logger *slog.Logger, cfg *config.Config, repo *repository.Repository, from, to string) {
	calCfg, err := cfg.CalendarConfig()
	if err != nil {
		logger.Error("轮班配置错误", slog.String("error", err.Error()))
		return
	}
	cal, err := rotation.New(calCfg)
	if err != nil {
		logger.Error("无法创建轮班日历", slog.String("error", err.Error()))
		return
	}

	if to == "" {
		to = from
	}
	fromDate, err := cal.ParseDate(from)
	if err != nil {
		logger.Error("开始日期无效", slog.String("from", from))
		return
	}
	toDate, err := cal.ParseDate(to)
	if err != nil {
		logger.Error("结束日期无效", slog.String("to", to))
		return
	}

	employees, err := repo.GetActiveEmployees()
	if err != nil {
		logger.Error("无法获取在职员工", slog.String("error", err.Error()))
		return
	}

	records, err := utils.BuildScheduledAttendances(cal, employees, fromDate, toDate)
	if err != nil {
		logger.Error("无法生成排班记录", slog.String("error", err.Error()))
		return
	}

	inserted, err := repo.InsertScheduledAttendances(records)
	if err != nil {
		logger.Error("无法插入排班记录", slog.String("error", err.Error()))
		return
	}

	logger.Info("生成排班记录成功", slog.Int("total", len(records)), slog.Int64("inserted", inserted))
}
