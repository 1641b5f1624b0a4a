package transport

import (
	"testing"
	"time"

	"github.com/dokzlo13/ledremote/internal/decoder"
	"github.com/dokzlo13/ledremote/internal/jsoncmd"
)

type recordingDecoder struct {
	codes []uint32
}

func (d *recordingDecoder) Decode(code uint32) error {
	d.codes = append(d.codes, code)
	return nil
}

type busy bool

func (b *busy) IsUpdating() bool { return bool(*b) }

type fakeProgram struct {
	codes []uint32
	err   error
}

func (p *fakeProgram) Dispatch(code uint32) (bool, error) {
	p.codes = append(p.codes, code)
	return false, p.err
}

func TestIRPollerInterval(t *testing.T) {
	q := NewQueueReceiver(8)
	dec := &recordingDecoder{}
	var updating busy
	p := NewIRPoller(q, dec, &updating)

	base := time.Unix(1000, 0)
	q.Push(1)
	q.Push(2)
	q.Push(3)

	p.Handle(base)
	p.Handle(base.Add(100 * time.Millisecond)) // too soon
	if len(dec.codes) != 1 {
		t.Fatalf("codes = %v, want one", dec.codes)
	}

	updating = true
	p.Handle(base.Add(200 * time.Millisecond)) // busy strip widens the interval
	if len(dec.codes) != 1 {
		t.Fatalf("polled while strip busy: %v", dec.codes)
	}
	p.Handle(base.Add(250 * time.Millisecond))
	if len(dec.codes) != 2 {
		t.Fatalf("codes = %v, want two", dec.codes)
	}

	updating = false
	p.Handle(base.Add(380 * time.Millisecond))
	if len(dec.codes) != 3 {
		t.Errorf("codes = %v, want three", dec.codes)
	}
}

func TestIRPollerDebounce(t *testing.T) {
	q := NewQueueReceiver(8)
	dec := &recordingDecoder{}
	p := NewIRPoller(q, dec, nil)

	base := time.Unix(1000, 0)
	steps := []struct {
		at   time.Duration
		code uint32
	}{
		{0, 0xFF02FD},
		{200 * time.Millisecond, 0xFF02FD},           // duplicate, dropped
		{400 * time.Millisecond, decoder.RepeatCode}, // repeat sentinel always passes
		{600 * time.Millisecond, decoder.RepeatCode},
		{900 * time.Millisecond, 0xFF02FD}, // past the window
	}
	for _, st := range steps {
		q.Push(st.code)
		p.Handle(base.Add(st.at))
	}

	want := []uint32{0xFF02FD, decoder.RepeatCode, decoder.RepeatCode, 0xFF02FD}
	if len(dec.codes) != len(want) {
		t.Fatalf("codes = %X, want %X", dec.codes, want)
	}
	for i := range want {
		if dec.codes[i] != want[i] {
			t.Errorf("codes[%d] = %X, want %X", i, dec.codes[i], want[i])
		}
	}
}

func TestRFPoller(t *testing.T) {
	q := NewQueueReceiver(8)
	prog := &fakeProgram{err: jsoncmd.ErrCodeNotMapped}
	var updating busy
	p := NewRFPoller(q, prog, &updating)

	base := time.Unix(1000, 0)

	q.Push(5592405)
	updating = true
	p.Handle(base)
	if len(prog.codes) != 0 || q.Len() != 1 {
		t.Fatal("RF polled while strip busy")
	}

	updating = false
	p.Handle(base)
	q.Push(5592405)
	p.Handle(base.Add(500 * time.Millisecond))
	q.Push(5592405)
	p.Handle(base.Add(900 * time.Millisecond))
	q.Push(1234)
	p.Handle(base.Add(950 * time.Millisecond))

	if len(prog.codes) != 3 {
		t.Errorf("dispatched = %v, want three", prog.codes)
	}
	if p.LastCode() != 1234 {
		t.Errorf("LastCode = %d", p.LastCode())
	}
}

func TestQueueReceiverBounded(t *testing.T) {
	q := NewQueueReceiver(2)
	if !q.Push(1) || !q.Push(2) {
		t.Fatal("push into empty queue failed")
	}
	if q.Push(3) {
		t.Error("push into full queue succeeded")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped = %d", q.Dropped())
	}
	if c, ok := q.Poll(); !ok || c != 1 {
		t.Errorf("Poll = %d, %v", c, ok)
	}
	q.Poll()
	if _, ok := q.Poll(); ok {
		t.Error("Poll on empty queue returned a code")
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0xFF02FD", 0xFF02FD, false},
		{" 0XffFFffFF\n", 0xFFFFFFFF, false},
		{"5592405", 5592405, false},
		{"0x", 0, true},
		{"-1", 0, true},
		{"4294967296", 0, true},
		{"red", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCode([]byte(tt.in))
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseCode(%q) = %X, %v", tt.in, got, err)
		}
	}
}
