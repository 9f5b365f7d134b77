package component

type Bullet struct {
	Damage int
}

var BulletComponent = NewComponent[Bullet]()
