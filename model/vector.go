package model

import "math"

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

var IdentityQuaternion = Quaternion{W: 1}

// Mul returns the Hamilton product q*r.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

func (q Quaternion) Length() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l == 0 {
		return q
	}
	return Quaternion{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// QuaternionFromEuler builds a rotation from degrees about x (pitch), y (yaw)
// and z (roll), composed as yaw*pitch*roll.
func QuaternionFromEuler(x, y, z float64) Quaternion {
	pitch := x * math.Pi / 180
	yaw := y * math.Pi / 180
	roll := z * math.Pi / 180

	qx := Quaternion{X: math.Sin(pitch / 2), W: math.Cos(pitch / 2)}
	qy := Quaternion{Y: math.Sin(yaw / 2), W: math.Cos(yaw / 2)}
	qz := Quaternion{Z: math.Sin(roll / 2), W: math.Cos(roll / 2)}
	return qy.Mul(qx).Mul(qz).Normalize()
}
