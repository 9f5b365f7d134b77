package component

// Pose is the picture the renderer should show for the player.
type Pose uint8

const (
	PoseIdle Pose = iota
	PoseRun
	PoseGun
)

func (p Pose) String() string {
	switch p {
	case PoseRun:
		return "run"
	case PoseGun:
		return "gun"
	default:
		return "idle"
	}
}

type Player struct {
	MoveSpeed    float64
	JumpSpeed    float64
	BulletSpeed  float64
	BulletOffset float64
	BulletTTL    int
	// Walk is the signed horizontal speed requested by the last move intent.
	Walk float64
	Pose Pose
}

var PlayerComponent = NewComponent[Player]()
