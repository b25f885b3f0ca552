package domain

const (
	PowerupXPBoost      = "xp_boost"
	PowerupDoublePoints = "double_points"
	PowerupShield       = "shield"
)

const powerupMax = 5

type Powerup struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}

type Inventory struct {
	Coins         int                `json:"coins"`
	Gems          int                `json:"gems"`
	Powerups      map[string]Powerup `json:"powerups"`
	ActiveEffects []string           `json:"active_effects"`
}

func DefaultInventory() Inventory {
	return Inventory{
		Powerups: map[string]Powerup{
			PowerupXPBoost:      {Max: powerupMax},
			PowerupDoublePoints: {Max: powerupMax},
			PowerupShield:       {Max: powerupMax},
		},
		ActiveEffects: []string{},
	}
}

func (inv *Inventory) Normalize() {
	defaults := DefaultInventory()
	if inv.Powerups == nil {
		inv.Powerups = defaults.Powerups
	} else {
		for kind, p := range defaults.Powerups {
			if _, ok := inv.Powerups[kind]; !ok {
				inv.Powerups[kind] = p
			}
		}
	}
	if inv.ActiveEffects == nil {
		inv.ActiveEffects = []string{}
	}
	if inv.Coins < 0 {
		inv.Coins = 0
	}
	if inv.Gems < 0 {
		inv.Gems = 0
	}
}

// AddPowerup increments the counter up to its cap. Unknown kinds are
// dropped silently (catalog lookups are non-fatal).
func (inv *Inventory) AddPowerup(kind string) bool {
	p, ok := inv.Powerups[kind]
	if !ok || p.Count >= p.Max {
		return false
	}
	p.Count++
	inv.Powerups[kind] = p
	return true
}

func (inv *Inventory) EffectActive(kind string) bool {
	for _, e := range inv.ActiveEffects {
		if e == kind {
			return true
		}
	}
	return false
}

// ActivatePowerup consumes one charge and records the running effect.
func (inv *Inventory) ActivatePowerup(kind string) bool {
	p, ok := inv.Powerups[kind]
	if !ok || p.Count == 0 || inv.EffectActive(kind) {
		return false
	}
	p.Count--
	inv.Powerups[kind] = p
	inv.ActiveEffects = append(inv.ActiveEffects, kind)
	return true
}

// ClearEffect removes a running effect, typically after the session that
// consumed it completes.
func (inv *Inventory) ClearEffect(kind string) {
	kept := inv.ActiveEffects[:0]
	for _, e := range inv.ActiveEffects {
		if e != kind {
			kept = append(kept, e)
		}
	}
	inv.ActiveEffects = kept
}
