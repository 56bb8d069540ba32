package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func TestDampIsIdempotentAtGoal(t *testing.T) {
	for _, dt := range []float64{0, 1.0 / 240, 1.0 / 50, 0.5, 10} {
		if got := Damp(3.25, 3.25, 12, dt); got != 3.25 {
			t.Fatalf("Damp at goal with dt=%v = %v, want 3.25", dt, got)
		}
	}
	v := mgl64.Vec3{1, -2, 3}
	if got := DampVec3(v, v, 8, 0.02); got != v {
		t.Fatalf("DampVec3 at goal = %v, want %v", got, v)
	}
}

func TestDampIsFrameRateIndependent(t *testing.T) {
	coarse := 0.0
	for i := 0; i < 10; i++ {
		coarse = Damp(coarse, 1, 8, 0.1)
	}
	fine := 0.0
	for i := 0; i < 1000; i++ {
		fine = Damp(fine, 1, 8, 0.001)
	}
	approxEqual(t, coarse, fine, 1e-9, "value after 1s")
	approxEqual(t, coarse, 1-math.Exp(-8), 1e-9, "closed form")
}

func TestDampFactorDegenerateInputs(t *testing.T) {
	if f := DampFactor(0, 1); f != 0 {
		t.Fatalf("DampFactor(rate=0)=%v want 0", f)
	}
	if f := DampFactor(5, -1); f != 0 {
		t.Fatalf("DampFactor(dt<0)=%v want 0", f)
	}
}

func TestStepAngleShortestPath(t *testing.T) {
	step := StepAngle(170, -170, 15)
	if step != -175 {
		t.Fatalf("first step=%.2f want -175", step)
	}
	next := StepAngle(step, -170, 15)
	if next != -170 {
		t.Fatalf("second step=%.2f want -170", next)
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0}, {180, 180}, {-180, 180}, {540, 180}, {-190, 170}, {725, 5},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("NormalizeAngle(%v)=%v want %v", tt.in, got, tt.want)
		}
	}
}

func TestYawRotationRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 45, 90, -135, 180} {
		got := YawOf(YawRotation(yaw))
		if math.Abs(SignedAngleDelta(got, yaw)) > 1e-9 {
			t.Fatalf("YawOf(YawRotation(%v)) = %v", yaw, got)
		}
	}
}

func TestYawRotationMatchesHorizontalBasis(t *testing.T) {
	forward, right := HorizontalBasis(90)
	gotF := YawRotation(90).Rotate(Forward)
	gotR := YawRotation(90).Rotate(Right)
	if !gotF.ApproxEqualThreshold(forward, 1e-9) || !gotR.ApproxEqualThreshold(right, 1e-9) {
		t.Fatalf("rotated axes %v/%v, basis %v/%v", gotF, gotR, forward, right)
	}
	if !forward.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Fatalf("yaw 90 forward = %v, want +X", forward)
	}
}

func TestEulerRotationPositivePitchLooksDown(t *testing.T) {
	f := EulerRotation(30, 0).Rotate(Forward)
	if f[1] >= 0 {
		t.Fatalf("forward.y = %v, want < 0", f[1])
	}
	approxEqual(t, f[1], -0.5, 1e-9, "forward.y")
}

func TestClampUnit(t *testing.T) {
	got := ClampUnit(mgl64.Vec2{1, 1})
	approxEqual(t, got.Len(), 1, 1e-12, "len")
	got = ClampUnit(mgl64.Vec2{3, 0})
	if got != (mgl64.Vec2{1, 0}) {
		t.Fatalf("ClampUnit({3,0}) = %v", got)
	}
	small := mgl64.Vec2{0.2, -0.3}
	if got := ClampUnit(small); got != small {
		t.Fatalf("ClampUnit(%v) = %v, want unchanged", small, got)
	}
}
