package bungie

// ItemType is Destiny's DestinyItemType enum, used to classify a weapon
// result's referenced inventory item.
type ItemType int

const (
	ItemTypeUnknown ItemType = -1
	ItemTypeNone    ItemType = 0
	ItemTypeWeapon  ItemType = 3
)

// ItemSubType narrows ItemType (e.g. which weapon archetype).
type ItemSubType int

const (
	ItemSubTypeUnknown         ItemSubType = -1
	ItemSubTypeNone            ItemSubType = 0
	ItemSubTypeAutoRifle       ItemSubType = 6
	ItemSubTypeShotgun         ItemSubType = 7
	ItemSubTypeMachinegun      ItemSubType = 8
	ItemSubTypeHandCannon      ItemSubType = 9
	ItemSubTypeRocketLauncher  ItemSubType = 10
	ItemSubTypeFusionRifle     ItemSubType = 11
	ItemSubTypeSniperRifle     ItemSubType = 12
	ItemSubTypePulseRifle      ItemSubType = 13
	ItemSubTypeScoutRifle      ItemSubType = 14
	ItemSubTypeSidearm         ItemSubType = 17
	ItemSubTypeSword           ItemSubType = 18
	ItemSubTypeFusionRifleLine ItemSubType = 22
	ItemSubTypeGrenadeLauncher ItemSubType = 23
	ItemSubTypeSubmachineGun   ItemSubType = 24
	ItemSubTypeTraceRifle      ItemSubType = 25
	ItemSubTypeBow             ItemSubType = 31
)

func (s ItemSubType) String() string {
	switch s {
	case ItemSubTypeAutoRifle:
		return "Auto Rifle"
	case ItemSubTypeShotgun:
		return "Shotgun"
	case ItemSubTypeMachinegun:
		return "Machine Gun"
	case ItemSubTypeHandCannon:
		return "Hand Cannon"
	case ItemSubTypeRocketLauncher:
		return "Rocket Launcher"
	case ItemSubTypeFusionRifle:
		return "Fusion Rifle"
	case ItemSubTypeSniperRifle:
		return "Sniper Rifle"
	case ItemSubTypePulseRifle:
		return "Pulse Rifle"
	case ItemSubTypeScoutRifle:
		return "Scout Rifle"
	case ItemSubTypeSidearm:
		return "Sidearm"
	case ItemSubTypeSword:
		return "Sword"
	case ItemSubTypeFusionRifleLine:
		return "Linear Fusion Rifle"
	case ItemSubTypeGrenadeLauncher:
		return "Grenade Launcher"
	case ItemSubTypeSubmachineGun:
		return "Submachine Gun"
	case ItemSubTypeTraceRifle:
		return "Trace Rifle"
	case ItemSubTypeBow:
		return "Bow"
	default:
		return "Unknown"
	}
}
