package st7032

import (
	"fmt"

	"periph.io/x/devices/v3/st7032/register"
)

// RecoveryError is returned when a write in the extended table failed. Err
// is the failure of the write itself; RestoreErr is the failure to return to
// the normal table afterwards, nil if the normal table was restored.
//
// When RestoreErr is set the controller is left in the extended table and
// the shadow says so; the next operation retries the switch.
type RecoveryError struct {
	Err        error
	RestoreErr error
}

func (e *RecoveryError) Error() string {
	if e.RestoreErr == nil {
		return fmt.Sprintf("%v (normal table restored)", e.Err)
	}
	return fmt.Sprintf("%v (normal table not restored: %v)", e.Err, e.RestoreErr)
}

func (e *RecoveryError) Unwrap() []error {
	if e.RestoreErr == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.RestoreErr}
}

// NormalMode selects the normal instruction table. It sends nothing when the
// table is already selected.
func (d *Dev) NormalMode() error {
	if err := d.toNormal(); err != nil {
		return fmt.Errorf("st7032: normal mode: %w", err)
	}
	return nil
}

// ExtendedMode selects the extended instruction table. It sends nothing when
// the table is already selected.
//
// The table stays selected until NormalMode or any operation touching a
// register of the normal table.
func (d *Dev) ExtendedMode() error {
	if err := d.toExtended(); err != nil {
		return fmt.Errorf("st7032: extended mode: %w", err)
	}
	return nil
}

func (d *Dev) toNormal() error {
	return d.selectTable(Normal)
}

func (d *Dev) toExtended() error {
	return d.selectTable(Extended)
}

func (d *Dev) selectTable(t Table) error {
	if d.st.Table == t {
		return nil
	}
	f := d.st.function() &^ register.ExtendedTable
	if t == Extended {
		f |= register.ExtendedTable
	}
	if err := d.functionSet(f); err != nil {
		return err
	}
	d.log.Debug("st7032: instruction table", "table", t)
	return nil
}

// withExtended runs fn with the extended table selected and always tries to
// go back to the normal table.
func (d *Dev) withExtended(fn func() error) error {
	if err := d.toExtended(); err != nil {
		return err
	}
	err := fn()
	rerr := d.toNormal()
	if err != nil {
		if rerr != nil {
			d.log.Warn("st7032: left in extended table", "err", err, "restore", rerr)
		}
		return &RecoveryError{Err: err, RestoreErr: rerr}
	}
	return rerr
}

// functionSet writes the whole function set mask and folds it into the
// shadow.
func (d *Dev) functionSet(f register.Function) error {
	if !f.Has(register.EightBit) {
		return ErrFourBitMode
	}
	if f.Has(register.TwoLine) && f.Has(register.DoubleHeight) {
		return ErrDoubleHeight
	}
	b, err := register.FunctionSetByte(f)
	if err != nil {
		return err
	}
	if err := d.command(b); err != nil {
		return err
	}
	d.st.setFunction(f)
	return nil
}
