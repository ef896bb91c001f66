package scx

import "strconv"

// EffectType identifies a trigger effect.
type EffectType int32

const (
	EffectChangeDiplomacy EffectType = iota + 1
	EffectResearchTechnology
	EffectSendChat
	EffectPlaySound
	EffectSendTribute
	EffectUnlockGate
	EffectLockGate
	EffectActivateTrigger
	EffectDeactivateTrigger
	EffectAIScriptGoal
	EffectCreateObject
	EffectTaskObject
	EffectDeclareVictory
	EffectKillObject
	EffectRemoveObject
	EffectChangeView
	EffectUnload
	EffectChangeOwnership
	EffectPatrol
	EffectDisplayInstructions
	EffectClearInstructions
	EffectFreezeUnit
	EffectUseAdvancedButtons
	EffectDamageObject
	EffectPlaceFoundation
	EffectChangeObjectName
	EffectChangeObjectHP
	EffectChangeObjectAttack
	EffectStopUnit
	EffectSnapView
)

const (
	EffectEnableTech EffectType = iota + 32
	EffectDisableTech
	EffectEnableUnit
	EffectDisableUnit
	EffectFlashObjects
)

var effectTypeNames = map[EffectType]string{
	EffectChangeDiplomacy:     "change diplomacy",
	EffectResearchTechnology:  "research technology",
	EffectSendChat:            "send chat",
	EffectPlaySound:           "play sound",
	EffectSendTribute:         "send tribute",
	EffectUnlockGate:          "unlock gate",
	EffectLockGate:            "lock gate",
	EffectActivateTrigger:     "activate trigger",
	EffectDeactivateTrigger:   "deactivate trigger",
	EffectAIScriptGoal:        "ai script goal",
	EffectCreateObject:        "create object",
	EffectTaskObject:          "task object",
	EffectDeclareVictory:      "declare victory",
	EffectKillObject:          "kill object",
	EffectRemoveObject:        "remove object",
	EffectChangeView:          "change view",
	EffectUnload:              "unload",
	EffectChangeOwnership:     "change ownership",
	EffectPatrol:              "patrol",
	EffectDisplayInstructions: "display instructions",
	EffectClearInstructions:   "clear instructions",
	EffectFreezeUnit:          "freeze unit",
	EffectUseAdvancedButtons:  "use advanced buttons",
	EffectDamageObject:        "damage object",
	EffectPlaceFoundation:     "place foundation",
	EffectChangeObjectName:    "change object name",
	EffectChangeObjectHP:      "change object hp",
	EffectChangeObjectAttack:  "change object attack",
	EffectStopUnit:            "stop unit",
	EffectSnapView:            "snap view",
	EffectEnableTech:          "enable tech",
	EffectDisableTech:         "disable tech",
	EffectEnableUnit:          "enable unit",
	EffectDisableUnit:         "disable unit",
	EffectFlashObjects:        "flash objects",
}

func (t EffectType) String() string {
	if name, ok := effectTypeNames[t]; ok {
		return name
	}
	return "effect(" + strconv.Itoa(int(t)) + ")"
}

// EffectField names a slot in an effect field vector.
type EffectField int

const (
	EffectAIGoal EffectField = iota
	EffectAmount
	EffectResource
	EffectDiplomacy
	EffectNumSelected
	EffectLocationUnit
	EffectUnitID
	EffectPlayerSource
	EffectPlayerTarget
	EffectTechnology
	EffectStringTableID
	EffectUnknown
	EffectDisplayTime
	EffectTrigger
	EffectLocationX
	EffectLocationY
	EffectAreaSouthWestX
	EffectAreaSouthWestY
	EffectAreaNorthEastX
	EffectAreaNorthEastY
	EffectUnitGroup
	EffectUnitType
	EffectInstructionPanel
)

// ConditionType identifies a trigger condition.
type ConditionType int32

const (
	ConditionBringObjectToArea ConditionType = iota
	ConditionBringObjectToObject
	ConditionOwnObjects
	ConditionOwnFewerObjects
	ConditionObjectsInArea
	ConditionDestroyObject
	ConditionCaptureObject
	ConditionAccumulateAttribute
	ConditionResearchTechnology
	ConditionTimer
	ConditionObjectSelected
	ConditionAISignal
	ConditionPlayerDefeated
	ConditionObjectHasTarget
	ConditionObjectVisible
	ConditionObjectNotVisible
	ConditionResearchingTechnology
	ConditionUnitsGarrisoned
	ConditionDifficultyLevel
	ConditionOwnFewerFoundations
	ConditionSelectedObjectsInArea
	ConditionPoweredObjectsInArea
	ConditionUnitsQueuedPastPopCap
)

var conditionTypeNames = [...]string{
	"bring object to area",
	"bring object to object",
	"own objects",
	"own fewer objects",
	"objects in area",
	"destroy object",
	"capture object",
	"accumulate attribute",
	"research technology",
	"timer",
	"object selected",
	"ai signal",
	"player defeated",
	"object has target",
	"object visible",
	"object not visible",
	"researching technology",
	"units garrisoned",
	"difficulty level",
	"own fewer foundations",
	"selected objects in area",
	"powered objects in area",
	"units queued past pop cap",
}

func (t ConditionType) String() string {
	if t >= 0 && int(t) < len(conditionTypeNames) {
		return conditionTypeNames[t]
	}
	return "condition(" + strconv.Itoa(int(t)) + ")"
}

// ConditionField names a slot in a condition field vector.
type ConditionField int

const (
	ConditionAmount ConditionField = iota
	ConditionResource
	ConditionUnitObject
	ConditionUnitLocation
	ConditionUnitClass
	ConditionPlayer
	ConditionTechnology
	ConditionTimerValue
	ConditionUnknown
	ConditionAreaSouthWestX
	ConditionAreaSouthWestY
	ConditionAreaNorthEastX
	ConditionAreaNorthEastY
	ConditionUnitGroup
	ConditionUnitType
	ConditionAISignalValue
)
