package gamedata

import "slices"

// bossesByRaid はレイド名ごとのボス一覧（攻略順）。
// NaxxramasはWotLK版とVanilla版で同じボス構成のため1エントリで共有する。
var bossesByRaid = map[string][]string{
	"Nerub-ar Palace": {
		"Ulgrax the Devourer",
		"The Bloodbound Horror",
		"Sikran",
		"Rasha'nan",
		"Broodtwister Ovi'nax",
		"Nexus-Princess Ky'veza",
		"The Silken Court",
		"Queen Ansurek",
	},
	"Liberation of Undermine": {
		"Vexie and the Geargrinders",
		"Cauldron of Carnage",
		"Rik Reverb",
		"Stix Bunkjunker",
		"Sprocketmonger Lockenstock",
		"The One-Armed Bandit",
		"Mug'Zee, Heads of Security",
		"Chrome King Gallywix",
	},
	"Manaforge Omega": {
		"Plexus Sentinel",
		"Loom'ithar",
		"Soulbinder Naazindhri",
		"Forgeweaver Araz",
		"The Soul Hunters",
		"Fractillus",
		"Nexus-King Salhadaar",
		"Dimensius, the All-Devouring",
	},
	"Amirdrassil, the Dream's Hope": {
		"Gnarlroot",
		"Igira the Cruel",
		"Volcoross",
		"Council of Dreams",
		"Larodar, Keeper of the Flame",
		"Nymue, Weaver of the Cycle",
		"Smolderon",
		"Tindral Sageswift, Seer of the Flame",
		"Fyrakk the Blazing",
	},
	"Aberrus, the Shadowed Crucible": {
		"Kazzara, the Hellforged",
		"The Amalgamation Chamber",
		"The Forgotten Experiments",
		"Assault of the Zaqali",
		"Rashok, the Elder",
		"The Vigilant Steward, Zskarn",
		"Magmorax",
		"Echo of Neltharion",
		"Scalecommander Sarkareth",
	},
	"Vault of the Incarnates": {
		"Eranog",
		"Terros",
		"The Primal Council",
		"Sennarth, the Cold Breath",
		"Dathea, Ascended",
		"Kurog Grimtotem",
		"Broodkeeper Diurna",
		"Raszageth the Storm-Eater",
	},
	"Sepulcher of the First Ones": {
		"Vigilant Guardian",
		"Skolex, the Insatiable Ravener",
		"Artificer Xy'mox",
		"Dausegne, the Fallen Oracle",
		"Prototype Pantheon",
		"Lihuvim, Principal Architect",
		"Halondrus the Reclaimer",
		"Anduin Wrynn",
		"Lords of Dread",
		"Rygelon",
		"The Jailer",
	},
	"Sanctum of Domination": {
		"The Tarragrue",
		"The Eye of the Jailer",
		"The Nine",
		"Remnant of Ner'zhul",
		"Soulrender Dormazain",
		"Painsmith Raznal",
		"Guardian of the First Ones",
		"Fatescribe Roh-Kalo",
		"Kel'Thuzad",
		"Sylvanas Windrunner",
	},
	"Castle Nathria": {
		"Shriekwing",
		"Huntsman Altimor",
		"Hungering Destroyer",
		"Sun King's Salvation",
		"Artificer Xy'mox",
		"Lady Inerva Darkvein",
		"The Council of Blood",
		"Sludgefist",
		"Stone Legion Generals",
		"Sire Denathrius",
	},
	"Icecrown Citadel": {
		"Lord Marrowgar",
		"Lady Deathwhisper",
		"Gunship Battle",
		"Deathbringer Saurfang",
		"Festergut",
		"Rotface",
		"Professor Putricide",
		"Blood Prince Council",
		"Blood-Queen Lana'thel",
		"Valithria Dreamwalker",
		"Sindragosa",
		"The Lich King",
	},
	"Trial of the Crusader": {
		"Northrend Beasts",
		"Lord Jaraxxus",
		"Faction Champions",
		"Twin Val'kyr",
		"Anub'arak",
	},
	"Ulduar": {
		"Flame Leviathan",
		"Ignis the Furnace Master",
		"Razorscale",
		"XT-002 Deconstructor",
		"Assembly of Iron",
		"Kologarn",
		"Auriaya",
		"Hodir",
		"Thorim",
		"Freya",
		"Mimiron",
		"General Vezax",
		"Yogg-Saron",
		"Algalon the Observer",
	},
	"Naxxramas": {
		"Anub'Rekhan",
		"Grand Widow Faerlina",
		"Maexxna",
		"Noth the Plaguebringer",
		"Heigan the Unclean",
		"Loatheb",
		"Instructor Razuvious",
		"Gothik the Harvester",
		"The Four Horsemen",
		"Patchwerk",
		"Grobbulus",
		"Gluth",
		"Thaddius",
		"Sapphiron",
		"Kel'Thuzad",
	},
	"Sunwell Plateau": {
		"Kalecgos",
		"Brutallus",
		"Felmyst",
		"Eredar Twins",
		"M'uru",
		"Kil'jaeden",
	},
	"Black Temple": {
		"High Warlord Naj'entus",
		"Supremus",
		"Shade of Akama",
		"Teron Gorefiend",
		"Gurtogg Bloodboil",
		"Reliquary of Souls",
		"Mother Shahraz",
		"The Illidari Council",
		"Illidan Stormrage",
	},
	"Serpentshrine Cavern": {
		"Hydross the Unstable",
		"The Lurker Below",
		"Leotheras the Blind",
		"Fathom-Lord Karathress",
		"Morogrim Tidewalker",
		"Lady Vashj",
	},
	"Karazhan": {
		"Attumen the Huntsman",
		"Moroes",
		"Maiden of Virtue",
		"Opera Event",
		"The Curator",
		"Terestian Illhoof",
		"Shade of Aran",
		"Netherspite",
		"Chess Event",
		"Prince Malchezaar",
		"Nightbane",
	},
	"Temple of Ahn'Qiraj": {
		"The Prophet Skeram",
		"Silithid Royalty",
		"Battleguard Sartura",
		"Fankriss the Unyielding",
		"Viscidus",
		"Princess Huhuran",
		"Twin Emperors",
		"Ouro",
		"C'Thun",
	},
	"Blackwing Lair": {
		"Razorgore the Untamed",
		"Vaelastrasz the Corrupt",
		"Broodlord Lashlayer",
		"Firemaw",
		"Ebonroc",
		"Flamegor",
		"Chromaggus",
		"Nefarian",
	},
	"Molten Core": {
		"Lucifron",
		"Magmadar",
		"Gehennas",
		"Garr",
		"Shazzrah",
		"Baron Geddon",
		"Sulfuron Harbinger",
		"Golemagg the Incinerator",
		"Majordomo Executus",
		"Ragnaros",
	},
}

// BossesForRaid はレイドのボス一覧を返す。未登録のレイドは空スライス。
func BossesForRaid(raidName string) []string {
	bosses, ok := bossesByRaid[raidName]
	if !ok {
		return []string{}
	}
	return slices.Clone(bosses)
}

// BossCount はレイドのボス総数を返す。未登録のレイドは0。
func BossCount(raidName string) int {
	return len(bossesByRaid[raidName])
}

// BossesByRaid は全レイドのボス一覧をコピーして返す。
func BossesByRaid() map[string][]string {
	result := make(map[string][]string, len(bossesByRaid))
	for name, bosses := range bossesByRaid {
		result[name] = slices.Clone(bosses)
	}
	return result
}
