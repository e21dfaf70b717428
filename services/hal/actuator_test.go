package hal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bolide-go/errcode"
	"bolide-go/services/hal/internal/platform"
	"bolide-go/x/timex"
)

func TestDigital_SetGet(t *testing.T) {
	f := platform.NewHostPinFactory()
	gp, err := f.GPIO("left", 4, FuncGPIOOut)
	require.NoError(t, err)

	d, err := NewDigital(gp, false)
	require.NoError(t, err)
	pin, _ := f.Pin(4)
	assert.True(t, pin.IsOutput())
	assert.False(t, d.Get())

	assert.True(t, d.Set(true))
	assert.True(t, d.Get())
	assert.True(t, pin.Get())

	assert.False(t, d.Set(false))
	assert.False(t, pin.Get())
	assert.Equal(t, 4, d.Pin())
}

func TestPWM_SetClamps(t *testing.T) {
	f := platform.NewHostPinFactory()
	pp, err := f.PWM("speed", 0)
	require.NoError(t, err)

	p, err := NewPWM(pp, 0, 0)
	require.NoError(t, err)
	require.Equal(t, PWMMax, p.Max())

	hw, _ := f.PWMPin(0)
	for _, v := range []int{-100000, -1, 0, 1, 511, PWMMax - 1, PWMMax, PWMMax + 1, 1 << 30} {
		want := v
		if want < 0 {
			want = 0
		}
		if want > PWMMax {
			want = PWMMax
		}
		assert.Equal(t, want, p.Set(v), "Set(%d)", v)
		assert.Equal(t, want, p.Get(), "Get after Set(%d)", v)
		assert.Equal(t, uint32(want), hw.Level(), "hardware level after Set(%d)", v)
	}
}

func TestPWM_RepeatedSetRewritesHardware(t *testing.T) {
	f := platform.NewHostPinFactory()
	pp, _ := f.PWM("speed", 0)
	p, err := NewPWM(pp, 0, 0)
	require.NoError(t, err)
	hw, _ := f.PWMPin(0)

	before := hw.Writes()
	p.Set(300)
	p.Set(300)
	p.Set(300)
	assert.Equal(t, before+3, hw.Writes())
}

func TestTone_SetClampsAndSilences(t *testing.T) {
	f := platform.NewHostPinFactory()
	tp, err := f.Tone("buzzer", 13)
	require.NoError(t, err)
	tn, err := NewTone(tp, 0, nil)
	require.NoError(t, err)
	hw, _ := f.TonePin(13)

	cases := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{1, 1},
		{440, 440},
		{ToneMax, ToneMax},
		{ToneMax + 1, ToneMax},
		{1 << 24, ToneMax},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tn.Set(c.in), "Set(%d)", c.in)
		assert.Equal(t, c.want, tn.Get())
		assert.Equal(t, uint32(c.want), hw.Freq())
	}
}

func TestTone_SetForExpires(t *testing.T) {
	clk := timex.NewManual(time.Unix(0, 0))
	f := platform.NewHostPinFactory()
	tp, _ := f.Tone("buzzer", 13)
	tn, err := NewTone(tp, 0, clk.Now)
	require.NoError(t, err)

	tn.SetFor(880, 100*time.Millisecond)
	assert.False(t, tn.Expire())
	assert.Equal(t, 880, tn.Get())

	clk.Advance(99 * time.Millisecond)
	assert.False(t, tn.Expire())

	clk.Advance(time.Millisecond)
	assert.True(t, tn.Expire())
	assert.Equal(t, 0, tn.Get())
	assert.False(t, tn.Expire(), "expired tone must not fire twice")

	tn.Set(440)
	clk.Advance(time.Hour)
	assert.False(t, tn.Expire(), "untimed tone never expires")
	assert.Equal(t, 440, tn.Get())
}

func TestPinFactory_ExclusiveClaims(t *testing.T) {
	f := platform.NewHostPinFactory()
	_, err := f.GPIO("button", 14, FuncGPIOIn)
	require.NoError(t, err)

	_, err = f.PWM("speed", 14)
	require.Error(t, err)
	assert.Equal(t, errcode.PinInUse, errcode.Of(err))

	_, err = f.GPIO("led", 99, FuncGPIOOut)
	assert.Equal(t, errcode.UnknownPin, errcode.Of(err))

	f.Release("someone-else", 14)
	_, err = f.Tone("buzzer", 14)
	assert.Equal(t, errcode.PinInUse, errcode.Of(err))

	f.Release("button", 14)
	_, err = f.Tone("buzzer", 14)
	assert.NoError(t, err)
}
