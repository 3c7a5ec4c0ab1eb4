package vehicle

import (
	"slices"

	"github.com/racesense/telemetry-strategy-go/pkg/model"
)

// placeholderNumber marks an unassigned race number. Never treated as a
// genuine reassignment.
const placeholderNumber = 0

// IdentityMap tracks all vehicles of a session, keyed by chassis number.
// Each pipeline run builds its own fresh map.
type IdentityMap struct {
	byChassis map[int]*model.VehicleIdentity
	order     []int // chassis numbers in first-seen order
}

func NewIdentityMap() *IdentityMap {
	return &IdentityMap{byChassis: make(map[int]*model.VehicleIdentity)}
}

// BuildIdentityMap processes raw points in arrival order. An unknown chassis
// (0) is tracked like any other id.
func BuildIdentityMap(points []model.RawPoint) *IdentityMap {
	m := NewIdentityMap()
	for i := range points {
		m.Track(&points[i])
	}
	return m
}

// Track registers one observation for the point's chassis.
func (m *IdentityMap) Track(p *model.RawPoint) {
	identity := m.getOrCreate(p.ChassisNumber, p.CarNumber)
	if p.CarNumber == identity.LastSeenCarNumber ||
		p.CarNumber == placeholderNumber {
		return
	}
	identity.CarNumberChanges = append(identity.CarNumberChanges,
		model.CarNumberChange{
			Lap:       p.Lap,
			OldNumber: identity.LastSeenCarNumber,
			NewNumber: p.CarNumber,
		})
	if !slices.Contains(identity.CarNumbers, p.CarNumber) {
		identity.CarNumbers = append(identity.CarNumbers, p.CarNumber)
	}
	identity.LastSeenCarNumber = p.CarNumber
}

// getOrCreate is the single insert point: the identity is created on first
// sight of a chassis and only mutated afterwards.
func (m *IdentityMap) getOrCreate(chassis, carNum int) *model.VehicleIdentity {
	if identity, ok := m.byChassis[chassis]; ok {
		return identity
	}
	identity := &model.VehicleIdentity{
		ChassisNumber:     chassis,
		CarNumbers:        []int{carNum},
		PrimaryCarNumber:  carNum,
		LastSeenCarNumber: carNum,
		CarNumberChanges:  []model.CarNumberChange{},
	}
	m.byChassis[chassis] = identity
	m.order = append(m.order, chassis)
	return identity
}

// ByChassis looks up a vehicle by its stable join key.
func (m *IdentityMap) ByChassis(chassis int) *model.VehicleIdentity {
	return m.byChassis[chassis]
}

// ByCarNumber resolves a vehicle by any race number it has carried.
// Secondary lookup only; race numbers are not reliable keys.
func (m *IdentityMap) ByCarNumber(num int) *model.VehicleIdentity {
	for _, chassis := range m.order {
		identity := m.byChassis[chassis]
		if slices.Contains(identity.CarNumbers, num) {
			return identity
		}
	}
	return nil
}

// MismatchCount sums the number change events across all vehicles.
func (m *IdentityMap) MismatchCount() int {
	total := 0
	for _, identity := range m.byChassis {
		total += len(identity.CarNumberChanges)
	}
	return total
}

// Size returns the number of distinct chassis ids seen.
func (m *IdentityMap) Size() int {
	return len(m.byChassis)
}

// Identities returns all vehicles in first-seen order.
func (m *IdentityMap) Identities() []*model.VehicleIdentity {
	ret := make([]*model.VehicleIdentity, 0, len(m.order))
	for _, chassis := range m.order {
		ret = append(ret, m.byChassis[chassis])
	}
	return ret
}
