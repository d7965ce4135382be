package vec

import "math"

// Vec2Float горизонтальный вектор (X, Z) с плавающей точкой.
// Используется для намерения движения игрока.
type Vec2Float struct {
	X, Z float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Z: v.Z + other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Z: v.Z * scalar}
}

// Normalized возвращает нормализованный вектор
func (v Vec2Float) Normalized() Vec2Float {
	length := v.Length()
	if length == 0 {
		return Vec2Float{}
	}
	return Vec2Float{X: v.X / length, Z: v.Z / length}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// RotateYaw поворачивает локальный вектор движения на угол рыскания.
// Вперёд в локальных координатах это -Z.
func (v Vec2Float) RotateYaw(yaw float64) Vec2Float {
	sin, cos := math.Sincos(yaw)
	return Vec2Float{
		X: v.X*cos + v.Z*sin,
		Z: -v.X*sin + v.Z*cos,
	}
}
