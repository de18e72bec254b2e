package st7032

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/st7032/glyph"
	"periph.io/x/devices/v3/st7032/panel"
	"periph.io/x/devices/v3/st7032/register"
)

func TestTableIdempotence(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.NormalMode())
	assert.Empty(t, b.ops(), "already in the normal table")

	require.NoError(t, d.ExtendedMode())
	require.NoError(t, d.ExtendedMode())
	assert.Equal(t, cmd(0x39), b.ops())
	assert.Equal(t, Extended, d.State().Table)

	require.NoError(t, d.NormalMode())
	assert.Equal(t, cmd(0x39, 0x38), b.ops())
	assert.Equal(t, Normal, d.State().Table)
}

func TestExtendedOperationsEndInNormal(t *testing.T) {
	tests := []struct {
		name string
		op   func(d *Dev) error
		want []byte
	}{
		{"oscillator", func(d *Dev) error { return d.InternalOscSet(true, 5) }, []byte{0x39, 0x1D, 0x38}},
		{"follower", func(d *Dev) error { return d.FollowerControlSet(false, 2) }, []byte{0x39, 0x62, 0x38}},
		{"contrast", func(d *Dev) error { return d.ContrastPowerIconSet(0x3F, false, true) }, []byte{0x39, 0x7F, 0x57, 0x38}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, b := newDev(t, panel.SB1602B)
			require.Equal(t, Normal, d.State().Table)
			require.NoError(t, tt.op(d))
			assert.Equal(t, cmd(tt.want...), b.ops())
			assert.Equal(t, Normal, d.State().Table)
		})
	}
}

func TestExtendedOperationFromExtendedTable(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)
	require.NoError(t, d.ExtendedMode())
	b.reset()

	require.NoError(t, d.InternalOscSet(false, 3))
	assert.Equal(t, cmd(0x13, 0x38), b.ops())
}

func TestCoResidentBitsPreserved(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.FollowerControlSet(true, 4))
	require.NoError(t, d.ContrastSet(40))
	// 40 = 0x28: low nibble 8, high bits 2, icons and booster kept.
	assert.Equal(t, cmd(0x39, 0x6C, 0x38, 0x39, 0x78, 0x5E, 0x38), b.ops())

	st := d.State()
	assert.Equal(t, uint8(40), st.Contrast)
	assert.True(t, st.IconsOn)
	assert.True(t, st.Booster)
	assert.Equal(t, Follower{On: true, Amplification: 4}, st.Follower)
}

func TestContrastAtomicity(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)
	before := d.State()

	// The power/icon write fails, the table is restored.
	b.failIn(3)
	err := d.ContrastSet(40)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNack)

	var rerr *RecoveryError
	require.ErrorAs(t, err, &rerr)
	assert.NoError(t, rerr.RestoreErr)

	assert.Equal(t, cmd(0x39, 0x78, 0x38), b.ops())
	assert.Equal(t, before, d.State())
}

func TestContrastFirstWriteFails(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)
	before := d.State()

	b.failIn(2)
	assert.Error(t, d.ContrastSet(1))
	assert.Equal(t, cmd(0x39, 0x38), b.ops())
	assert.Equal(t, before, d.State())
}

func TestRecoveryFails(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	b.failIn(3, 4)
	err := d.ContrastSet(40)
	var rerr *RecoveryError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, rerr.Err, errNack)
	assert.ErrorIs(t, rerr.RestoreErr, errNack)
	assert.Contains(t, err.Error(), "normal table not restored")

	st := d.State()
	assert.Equal(t, Extended, st.Table, "the shadow follows the device")
	assert.Equal(t, uint8(0x23), st.Contrast)

	// The next operation starts from the extended table and restores it.
	b.reset()
	require.NoError(t, d.ContrastSet(40))
	assert.Equal(t, cmd(0x78, 0x5E, 0x38), b.ops())
	assert.Equal(t, Normal, d.State().Table)
}

func TestRestoreFailsAfterWrite(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	b.failIn(3)
	err := d.InternalOscSet(true, 2)
	require.Error(t, err)
	var rerr *RecoveryError
	assert.False(t, errors.As(err, &rerr), "the write itself succeeded")

	st := d.State()
	assert.Equal(t, Oscillator{BiasQuarter: true, Frequency: 2}, st.Oscillator)
	assert.Equal(t, Extended, st.Table)

	b.reset()
	require.NoError(t, d.NormalMode())
	assert.Equal(t, cmd(0x38), b.ops())
}

func TestOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		op   func(d *Dev) error
	}{
		{"oscillator", func(d *Dev) error { return d.InternalOscSet(false, 8) }},
		{"follower", func(d *Dev) error { return d.FollowerControlSet(true, 8) }},
		{"contrast", func(d *Dev) error { return d.ContrastSet(64) }},
		{"line", func(d *Dev) error { return d.CursorPosition(2, 0) }},
		{"negative line", func(d *Dev) error { return d.CursorPosition(-1, 0) }},
		{"column", func(d *Dev) error { return d.CursorPosition(0, 16) }},
		{"icon address", func(d *Dev) error { return d.IconSetRaw(true, 16, 1) }},
		{"icon bits", func(d *Dev) error { return d.IconSetRaw(true, 0, 0x20) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, b := newDev(t, panel.SB1602B)
			before := d.State()
			assert.ErrorIs(t, tt.op(d), register.ErrOutOfRange)
			assert.Empty(t, b.ops())
			assert.Equal(t, before, d.State())
		})
	}
}

func TestCursorPosition(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.CursorPosition(1, 5))
	assert.Equal(t, cmd(0xC5), b.ops())
	assert.Equal(t, Cursor{Line: 1, Column: 5}, d.State().Cursor)
}

func TestClearDisplay(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)
	require.NoError(t, d.CursorPosition(1, 3))

	b.failIn(1)
	assert.ErrorIs(t, d.ClearDisplay(), errNack)
	assert.Equal(t, Cursor{Line: 1, Column: 3}, d.State().Cursor, "unchanged on failure")

	b.reset()
	require.NoError(t, d.ClearDisplay())
	assert.Equal(t, cmd(0x01), b.ops())
	assert.Equal(t, Cursor{}, d.State().Cursor)
}

func TestReturnHome(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.CursorPosition(1, 3))
	require.NoError(t, d.ReturnHome())
	assert.Equal(t, Cursor{}, d.State().Cursor)

	b.reset()
	require.NoError(t, d.EntryModeSet(true))
	require.NoError(t, d.ReturnHome())
	assert.Equal(t, cmd(0x07, 0x02, 0x8F), b.ops())
	assert.Equal(t, Cursor{Line: 0, Column: 15}, d.State().Cursor)
	assert.True(t, d.State().RightToLeft)

	b.reset()
	require.NoError(t, d.EntryModeSet(false))
	assert.Equal(t, cmd(0x04), b.ops())
}

func TestFunctionSet(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.FunctionSet(register.EightBit))
	assert.False(t, d.State().TwoLine)

	assert.ErrorIs(t, d.FunctionSet(register.TwoLine), ErrFourBitMode)
	assert.ErrorIs(t, d.FunctionSetMode(false, true, false), ErrFourBitMode)

	require.NoError(t, d.DoubleHeight(true))
	assert.True(t, d.State().DoubleHeight)

	// One-line mode keeps double height; two-line mode drops it.
	require.NoError(t, d.FunctionSetMode(true, false, false))
	require.NoError(t, d.TwoLineMode(true))
	assert.False(t, d.State().DoubleHeight)
	assert.ErrorIs(t, d.DoubleHeight(true), ErrDoubleHeight)
	assert.ErrorIs(t, d.FunctionSet(register.EightBit|register.TwoLine|register.DoubleHeight), ErrDoubleHeight)

	assert.Equal(t, cmd(0x30, 0x34, 0x34, 0x38), b.ops())
}

func TestTwoLineModeKeepsTable(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.ExtendedMode())
	require.NoError(t, d.TwoLineMode(false))
	assert.Equal(t, cmd(0x39, 0x31), b.ops())
	assert.Equal(t, Extended, d.State().Table)
	assert.False(t, d.State().TwoLine)
}

func TestCursorModes(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	// Init leaves an underlined blinking cursor.
	require.NoError(t, d.CursorDisplay(false))
	st := d.State()
	assert.False(t, st.CursorVisible)
	assert.True(t, st.Underline, "style is kept while hidden")
	assert.True(t, st.Blink)

	require.NoError(t, d.CursorDisplay(true))
	assert.True(t, d.State().CursorVisible)

	require.NoError(t, d.CursorMode(true, true, false))
	assert.True(t, d.State().CursorVisible)

	require.NoError(t, d.CursorMode(true, false, false))
	assert.False(t, d.State().CursorVisible)

	assert.Equal(t, cmd(0x0C, 0x0F, 0x0E, 0x0C), b.ops())

	// No style: nothing to show or hide.
	b.reset()
	require.NoError(t, d.CursorDisplay(true))
	require.NoError(t, d.CursorDisplay(false))
	assert.Empty(t, b.ops())
}

func TestShifts(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.DisplayShift(0))
	assert.Empty(t, b.ops())

	require.NoError(t, d.DisplayShift(-2))
	require.NoError(t, d.DisplayShift(1))
	assert.Equal(t, Cursor{}, d.State().Cursor)

	require.NoError(t, d.MoveCursor(3))
	require.NoError(t, d.MoveCursor(-1))
	assert.Equal(t, Cursor{Column: 2}, d.State().Cursor)

	assert.Equal(t, cmd(0x18, 0x18, 0x1C, 0x14, 0x14, 0x14, 0x10), b.ops())
}

func TestShiftSelectsNormalTable(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)
	require.NoError(t, d.ExtendedMode())
	b.reset()

	require.NoError(t, d.MoveCursor(1))
	assert.Equal(t, cmd(0x38, 0x14), b.ops())
}

func TestMoveCursorBounds(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	assert.ErrorIs(t, d.MoveCursor(-1), register.ErrOutOfRange)
	assert.Equal(t, Cursor{}, d.State().Cursor)

	require.NoError(t, d.CursorPosition(1, 15))
	b.reset()
	assert.ErrorIs(t, d.MoveCursor(1), register.ErrOutOfRange)
	assert.Equal(t, Cursor{Line: 1, Column: 15}, d.State().Cursor)
	assert.Empty(t, b.ops())

	// The restored cursor stays a valid DDRAM address.
	require.NoError(t, d.SetGlyph(0, glyph.Glyph{}))
	ops := b.ops()
	assert.Equal(t, cmd(0xCF), ops[len(ops)-1:])

	require.NoError(t, d.MoveCursor(-15))
	assert.Equal(t, Cursor{Line: 1}, d.State().Cursor)
}

func TestMoveCursorFailure(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	b.failIn(3)
	assert.Error(t, d.MoveCursor(5))
	assert.Equal(t, Cursor{Column: 2}, d.State().Cursor, "only the confirmed steps count")
}

func TestSleep(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	require.NoError(t, d.Sleep(false))
	assert.Empty(t, b.ops(), "already awake")

	require.NoError(t, d.Sleep(true))
	require.NoError(t, d.Sleep(true))
	assert.Equal(t, cmd(0x39, 0x60, 0x50, 0x38), b.ops())

	st := d.State()
	assert.True(t, st.Sleeping)
	assert.Equal(t, uint8(0x23), st.Contrast, "shadow kept for wake up")
	assert.Equal(t, Follower{On: true, Amplification: 4}, st.Follower)
	assert.True(t, st.IconsOn)
	assert.True(t, st.Booster)

	b.reset()
	require.NoError(t, d.Sleep(false))
	assert.Equal(t, cmd(0x39, 0x6C, 0x38, 0x39, 0x73, 0x5E, 0x38), b.ops())
	assert.False(t, d.State().Sleeping)
}

func TestSleepFailure(t *testing.T) {
	d, b := newDev(t, panel.SB1602B)

	b.failIn(2)
	assert.Error(t, d.Sleep(true))
	assert.False(t, d.State().Sleeping)
	assert.Equal(t, Normal, d.State().Table)

	b.reset()
	require.NoError(t, d.Sleep(true))
	assert.Equal(t, cmd(0x39, 0x60, 0x50, 0x38), b.ops())
}
