package vtable

import "time"

// Notifier shows short transient notices to the user.
type Notifier interface {
	Success(message string)
}

// ToastType selects the color and icon of a notice.
type ToastType uint8

const (
	ToastTypeInfo ToastType = iota
	ToastTypeSuccess
	ToastTypeError
)

// ToastNotification is one notice on screen.
type ToastNotification struct {
	Message string
	Type    ToastType
	TTL     time.Duration
	Age     time.Duration
}

const (
	toastFadeIn      = 150 * time.Millisecond
	toastFadeOutFrom = 0.7 // Fraction of TTL after which the notice fades
)

// opacity is 0 before appearing and after expiring, 1 while fully shown.
func (t ToastNotification) opacity() float32 {
	if t.Age < toastFadeIn {
		return float32(t.Age) / float32(toastFadeIn)
	}
	fadeFrom := time.Duration(float64(t.TTL) * toastFadeOutFrom)
	if t.Age <= fadeFrom {
		return 1
	}
	return clampf(1-float32(t.Age-fadeFrom)/float32(t.TTL-fadeFrom), 0, 1)
}

// ToastState queues the notices raised by table actions ("Columns
// auto-sized", "Copied to clipboard", copy failures). It implements
// Notifier; frontends age it once per frame and draw what is left.
type ToastState struct {
	Toasts []ToastNotification
}

// DefaultToastTTL is how long a notice stays up.
const DefaultToastTTL = 3 * time.Second

// ToastMaxVisible caps the stack; older notices are dropped.
const ToastMaxVisible = 5

// Toast queues a notice. ttl defaults to DefaultToastTTL.
func (ts *ToastState) Toast(message string, typ ToastType, ttl ...time.Duration) {
	t := ToastNotification{Message: message, Type: typ, TTL: DefaultToastTTL}
	if len(ttl) > 0 && ttl[0] > 0 {
		t.TTL = ttl[0]
	}
	ts.Toasts = append(ts.Toasts, t)
	if n := len(ts.Toasts); n > ToastMaxVisible {
		ts.Toasts = ts.Toasts[n-ToastMaxVisible:]
	}
}

// Success implements Notifier.
func (ts *ToastState) Success(message string) {
	ts.Toast(message, ToastTypeSuccess)
}

func (ts *ToastState) Error(message string) {
	ts.Toast(message, ToastTypeError)
}

// Update ages every notice by dt and drops the expired ones.
func (ts *ToastState) Update(dt time.Duration) {
	live := ts.Toasts[:0]
	for _, t := range ts.Toasts {
		t.Age += dt
		if t.Age < t.TTL {
			live = append(live, t)
		}
	}
	ts.Toasts = live
}

// Latest returns the newest notice still up.
func (ts *ToastState) Latest() (ToastNotification, bool) {
	if len(ts.Toasts) == 0 {
		return ToastNotification{}, false
	}
	return ts.Toasts[len(ts.Toasts)-1], true
}

// DrawToasts stacks the notices upwards from the bottom-right corner of a
// display of the given size, newest at the bottom.
func DrawToasts(dl *DrawList, ts *ToastState, display Vec2, style Style) {
	if ts == nil {
		return
	}
	const (
		padX   = float32(12)
		padY   = float32(8)
		margin = float32(10)
		gap    = float32(6)
	)

	bottom := display.Y - margin
	for i := len(ts.Toasts) - 1; i >= 0; i-- {
		t := ts.Toasts[i]
		alpha := t.opacity()
		if alpha <= 0 {
			continue
		}

		text := toastIcon(t.Type) + " " + t.Message
		w := float32(TextWidth(text))*style.charW() + padX*2
		h := style.charH() + padY*2
		box := Rect{X: display.X - margin - w, Y: bottom - h, W: w, H: h}

		r, g, b, _ := UnpackRGBA(toastColor(style, t.Type))
		dl.AddRect(box.X, box.Y, box.W, box.H, RGBA(r, g, b, uint8(230*alpha)))
		dl.AddRectOutline(box.X, box.Y, box.W, box.H, RGBA(255, 255, 255, uint8(60*alpha)), 1)
		dl.AddText(box.X+padX, box.Y+padY, text, RGBA(255, 255, 255, uint8(255*alpha)), style.FontScale, style.CharWidth, style.CharHeight)

		bottom = box.Y - gap
	}
}

func toastColor(style Style, t ToastType) uint32 {
	switch t {
	case ToastTypeSuccess:
		return style.ToastSuccessColor
	case ToastTypeError:
		return style.ToastErrorColor
	default:
		return style.ToastInfoColor
	}
}

func toastIcon(t ToastType) string {
	switch t {
	case ToastTypeSuccess:
		return "+"
	case ToastTypeError:
		return "X"
	default:
		return "i"
	}
}
