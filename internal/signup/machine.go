// Package signup is the phone → code → registered teaser shown on the landing page.
// No code is ever sent or verified; each step only waits a fixed cosmetic delay.
package signup

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Step string

const (
	StepPhone      Step = "phone"
	StepCode       Step = "code"
	StepRegistered Step = "registered"
)

const (
	PhoneLength    = 11
	CodeLength     = 4
	SimulatedDelay = 1500 * time.Millisecond
	// CreditLimit is the hardcoded limit shown once registered.
	CreditLimit = 30000
)

var (
	ErrSendDisabled = errors.New("sending codes is disabled")
	ErrWrongStep    = errors.New("action not available at this step")
	ErrIncomplete   = errors.New("input incomplete")
)

// Flags toggle product features consumed by the machine.
type Flags struct {
	SendCodeEnabled bool
}

// Wait blocks for d or until ctx is done.
type Wait func(ctx context.Context, d time.Duration) error

// Sleep is the production Wait.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot is the persisted part of the machine.
type Snapshot struct {
	Step  Step   `json:"step"`
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// State is the renderable view of the machine.
type State struct {
	Step            Step   `json:"step"`
	Phone           string `json:"phone"`
	MaskedPhone     string `json:"masked_phone,omitempty"`
	Code            string `json:"code"`
	Loading         bool   `json:"loading"`
	SendCodeEnabled bool   `json:"send_code_enabled"`
	CanVerify       bool   `json:"can_verify"`
	CreditLimit     int    `json:"credit_limit,omitempty"`
}

type Machine struct {
	flags   Flags
	wait    Wait
	step    Step
	phone   string
	code    string
	loading bool
}

// New starts a machine at the phone step. A nil wait uses Sleep.
func New(flags Flags, wait Wait) *Machine {
	if wait == nil {
		wait = Sleep
	}
	return &Machine{flags: flags, wait: wait, step: StepPhone}
}

// Restore rebuilds a machine from a snapshot.
func Restore(flags Flags, wait Wait, snap Snapshot) *Machine {
	m := New(flags, wait)
	switch snap.Step {
	case StepCode, StepRegistered:
		m.step = snap.Step
	}
	m.phone = digits(snap.Phone, PhoneLength)
	m.code = digits(snap.Code, CodeLength)
	return m
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Step: m.step, Phone: m.phone, Code: m.code}
}

func (m *Machine) State() State {
	st := State{
		Step:            m.step,
		Phone:           m.phone,
		Code:            m.code,
		Loading:         m.loading,
		SendCodeEnabled: m.flags.SendCodeEnabled,
		CanVerify:       m.step == StepCode && len(m.code) == CodeLength && !m.loading,
	}
	if m.step != StepPhone {
		st.MaskedPhone = MaskPhone(m.phone)
	}
	if m.step == StepRegistered {
		st.CreditLimit = CreditLimit
	}
	return st
}

// SetPhone keeps the digits of raw, capped at PhoneLength.
func (m *Machine) SetPhone(raw string) {
	m.phone = digits(raw, PhoneLength)
}

// SetCode keeps the digits of raw, capped at CodeLength.
func (m *Machine) SetCode(raw string) {
	m.code = digits(raw, CodeLength)
}

// SendCode moves from phone to code after the simulated delay.
func (m *Machine) SendCode(ctx context.Context) error {
	if !m.flags.SendCodeEnabled {
		return ErrSendDisabled
	}
	if m.step != StepPhone {
		return ErrWrongStep
	}
	if len(m.phone) != PhoneLength {
		return ErrIncomplete
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.step = StepCode
	return nil
}

// ResendCode waits the simulated delay and stays on the code step.
func (m *Machine) ResendCode(ctx context.Context) error {
	if !m.flags.SendCodeEnabled {
		return ErrSendDisabled
	}
	if m.step != StepCode {
		return ErrWrongStep
	}
	return m.delay(ctx)
}

// VerifyCode moves from code to registered after the simulated delay.
func (m *Machine) VerifyCode(ctx context.Context) error {
	if m.step != StepCode {
		return ErrWrongStep
	}
	if len(m.code) != CodeLength {
		return ErrIncomplete
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.step = StepRegistered
	return nil
}

// ChangeNumber returns from code to phone immediately.
func (m *Machine) ChangeNumber() error {
	if m.step != StepCode {
		return ErrWrongStep
	}
	m.step = StepPhone
	return nil
}

func (m *Machine) delay(ctx context.Context) error {
	m.loading = true
	defer func() { m.loading = false }()
	return m.wait(ctx, SimulatedDelay)
}

// MaskPhone renders 79991234567 as +7 (999) ***-**-67.
func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return "+" + phone
	}
	tail := phone
	if len(phone) > 2 {
		tail = phone[len(phone)-2:]
	}
	return "+" + phone[:1] + " (" + phone[1:4] + ") ***-**-" + tail
}

func digits(raw string, limit int) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == limit {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
