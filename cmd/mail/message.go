package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/shift-rotation/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailKind struct {
	file    string
	subject string
}

var mailKinds = map[string]mailKind{
	domain.MailTypeCreateEmployee: {"create_employee.html", "ECNC 轮班系统 - 账户信息"},
	domain.MailTypeResetPassword:  {"reset_password.html", "ECNC 轮班系统 - 重置密码"},
	domain.MailTypeWeeklyShift:    {"weekly_shift.html", "ECNC 轮班系统 - 本周班次"},
}

type renderer struct {
	from      string
	templates map[string]*template.Template
}

// newRenderer 启动时一次性解析所有邮件模板
func newRenderer(dir string, from string) (*renderer, error) {
	templates := make(map[string]*template.Template, len(mailKinds))
	for kind, mk := range mailKinds {
		tmpl, err := template.ParseFiles(filepath.Join(dir, mk.file))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板 %s: %w", mk.file, err)
		}
		templates[kind] = tmpl
	}

	return &renderer{from: from, templates: templates}, nil
}

// render 根据队列中的消息构建邮件，返回的错误表示消息本身不可投递
func (r *renderer) render(body []byte) (*mail.Msg, error) {
	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return nil, fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	tmpl, ok := r.templates[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型 %s", mailMessage.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(r.from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	msg.Subject(mailKinds[mailMessage.Type].subject)

	return msg, nil
}
