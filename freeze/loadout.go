package freeze

// Weapon bit flags for the start_weapon setting.
const (
	WeaponShotgun         = 1 << iota // 1
	WeaponSuperShotgun                // 2
	WeaponMachinegun                  // 4
	WeaponChaingun                    // 8
	WeaponGrenadeLauncher             // 16
	WeaponRocketLauncher              // 32
	WeaponHyperblaster                // 64
	WeaponRailgun                     // 128
)

type weaponDef struct {
	flag       int
	name       string
	ammo       string
	ammoAmount int
}

// In grant order; the last granted weapon becomes the selected one.
var weaponDefs = []weaponDef{
	{WeaponShotgun, "shotgun", "shells", 10},
	{WeaponSuperShotgun, "super shotgun", "shells", 10},
	{WeaponMachinegun, "machinegun", "bullets", 50},
	{WeaponChaingun, "chaingun", "bullets", 50},
	{WeaponGrenadeLauncher, "grenade launcher", "grenades", 5},
	{WeaponRocketLauncher, "rocket launcher", "rockets", 5},
	{WeaponHyperblaster, "hyperblaster", "cells", 50},
	{WeaponRailgun, "railgun", "slugs", 10},
}

// Inventory is what a player spawns with.
type Inventory struct {
	Items    map[string]int
	Armor    int
	Selected string
}

// Loadout builds the spawn inventory. The blaster is always given; further
// weapons and their ammo come from startWeapon's bit flags. Armor is rounded
// down to an even amount.
func Loadout(startWeapon, startArmor int) Inventory {
	inv := Inventory{
		Items:    map[string]int{"blaster": 1},
		Selected: "blaster",
	}

	if startArmor > 0 {
		inv.Armor = (startArmor / 2) * 2
	}

	for _, w := range weaponDefs {
		if startWeapon&w.flag == 0 {
			continue
		}
		inv.Items[w.name] = 1
		inv.Items[w.ammo] = w.ammoAmount
		inv.Selected = w.name
	}
	return inv
}
