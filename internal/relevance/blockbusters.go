// file: internal/relevance/blockbusters.go
// version: 1.1.0
// guid: 4e8b0d2f-6a1c-45e3-8b7d-9f0a3c5e1d62

package relevance

import "github.com/booktime/booktime/internal/models"

// blockbusterSeries is one entry of the popularity table: series famous
// enough that a query naming them should float confirmed members to the top
// of generic search. Smaller and separately weighted from the full catalog.
type blockbusterSeries struct {
	Name       string
	Weight     int
	Authors    []string
	Category   models.Category
	Keywords   []string
	Variations []string
}

var blockbusters = []blockbusterSeries{
	{"Harry Potter", 18000, []string{"J.K. Rowling"}, models.CategoryRoman, []string{"poudlard", "hogwarts", "sorcier"}, []string{"harry poter", "hary potter"}},
	{"One Piece", 18000, []string{"Eiichiro Oda"}, models.CategoryManga, []string{"luffy", "chapeau de paille"}, []string{"one pièce", "onepiece"}},
	{"Astérix", 17500, []string{"René Goscinny", "Albert Uderzo"}, models.CategoryBD, []string{"gaulois", "obelix", "potion magique"}, []string{"asterix"}},
	{"Naruto", 17500, []string{"Masashi Kishimoto"}, models.CategoryManga, []string{"konoha", "hokage"}, []string{"narutoo"}},
	{"Dragon Ball", 17500, []string{"Akira Toriyama"}, models.CategoryManga, []string{"goku", "sangoku", "kamehameha"}, []string{"dragonball"}},
	{"Le Seigneur des Anneaux", 17000, []string{"J.R.R. Tolkien"}, models.CategoryRoman, []string{"frodon", "mordor"}, []string{"lord of the rings"}},
	{"Les Aventures de Tintin", 17000, []string{"Hergé"}, models.CategoryBD, []string{"milou", "haddock"}, []string{"tintin"}},
	{"Le Trône de Fer", 16500, []string{"George R.R. Martin"}, models.CategoryRoman, []string{"westeros"}, []string{"game of thrones", "a song of ice and fire"}},
	{"L'Attaque des Titans", 16500, []string{"Hajime Isayama"}, models.CategoryManga, []string{"eren"}, []string{"attack on titan", "shingeki no kyojin"}},
	{"Demon Slayer", 16500, []string{"Koyoharu Gotouge"}, models.CategoryManga, []string{"tanjiro", "nezuko"}, []string{"kimetsu no yaiba"}},
	{"Death Note", 16000, []string{"Tsugumi Ohba", "Takeshi Obata"}, models.CategoryManga, []string{"kira", "shinigami"}, []string{"deathnote"}},
	{"Hunger Games", 16000, []string{"Suzanne Collins"}, models.CategoryRoman, []string{"katniss", "panem"}, []string{"the hunger games"}},
	{"My Hero Academia", 16000, []string{"Kohei Horikoshi"}, models.CategoryManga, []string{"deku", "alter"}, []string{"boku no hero academia"}},
	{"Lucky Luke", 15500, []string{"Morris"}, models.CategoryBD, []string{"dalton", "jolly jumper"}, []string{"luky luke"}},
	{"Twilight", 15500, []string{"Stephenie Meyer"}, models.CategoryRoman, []string{"cullen"}, []string{"fascination"}},
	{"Jujutsu Kaisen", 15500, []string{"Gege Akutami"}, models.CategoryManga, []string{"itadori", "sukuna"}, []string{"jujutsu kaizen"}},
	{"One-Punch Man", 15500, []string{"ONE", "Yusuke Murata"}, models.CategoryManga, []string{"saitama"}, []string{"one punch man"}},
	{"Percy Jackson", 15000, []string{"Rick Riordan"}, models.CategoryRoman, []string{"olympiens"}, []string{"percy jakson"}},
	{"Fullmetal Alchemist", 15000, []string{"Hiromu Arakawa"}, models.CategoryManga, []string{"elric", "alchimie"}, []string{"full metal alchemist"}},
	{"Bleach", 15000, []string{"Tite Kubo"}, models.CategoryManga, []string{"ichigo", "soul society"}, nil},
	{"Fairy Tail", 15000, []string{"Hiro Mashima"}, models.CategoryManga, []string{"natsu"}, []string{"fairytail"}},
	{"Hunter x Hunter", 15000, []string{"Yoshihiro Togashi"}, models.CategoryManga, []string{"nen"}, []string{"hxh", "hunter hunter"}},
	{"Les Schtroumpfs", 15000, []string{"Peyo"}, models.CategoryBD, []string{"gargamel"}, []string{"schtroumpf", "smurfs"}},
	{"Gaston Lagaffe", 14500, []string{"André Franquin"}, models.CategoryBD, []string{"gaffe"}, []string{"gaston"}},
	{"Spirou et Fantasio", 14500, []string{"André Franquin"}, models.CategoryBD, []string{"fantasio"}, []string{"spirou"}},
	{"Eragon", 14500, []string{"Christopher Paolini"}, models.CategoryRoman, []string{"alagaesia", "saphira"}, nil},
	{"Le Monde de Narnia", 14500, []string{"C.S. Lewis"}, models.CategoryRoman, []string{"aslan"}, []string{"narnia"}},
	{"Dune", 14500, []string{"Frank Herbert"}, models.CategoryRoman, []string{"arrakis", "fremen"}, nil},
	{"Berserk", 14500, []string{"Kentaro Miura"}, models.CategoryManga, []string{"guts"}, nil},
	{"Chainsaw Man", 14500, []string{"Tatsuki Fujimoto"}, models.CategoryManga, []string{"denji"}, []string{"chainsawman"}},
	{"Spy x Family", 14500, []string{"Tatsuya Endo"}, models.CategoryManga, []string{"anya"}, []string{"spy family"}},
	{"Tokyo Ghoul", 14000, []string{"Sui Ishida"}, models.CategoryManga, []string{"kaneki", "goule"}, []string{"tokyo ghul"}},
	{"Le Sorceleur", 14000, []string{"Andrzej Sapkowski"}, models.CategoryRoman, []string{"geralt"}, []string{"the witcher", "sorceleur"}},
	{"Millénium", 14000, []string{"Stieg Larsson"}, models.CategoryRoman, []string{"lisbeth salander"}, []string{"millennium"}},
	{"Thorgal", 14000, []string{"Jean Van Hamme", "Grzegorz Rosinski"}, models.CategoryBD, []string{"aaricia"}, nil},
	{"Blake et Mortimer", 14000, []string{"Edgar P. Jacobs"}, models.CategoryBD, []string{"olrik"}, []string{"blake and mortimer"}},
	{"XIII", 14000, []string{"Jean Van Hamme"}, models.CategoryBD, []string{"treize"}, nil},
	{"Outlander", 14000, []string{"Diana Gabaldon"}, models.CategoryRoman, []string{"jamie fraser"}, nil},
	{"La Roue du Temps", 14000, []string{"Robert Jordan"}, models.CategoryRoman, []string{"aes sedai"}, []string{"wheel of time"}},
	{"L'Assassin Royal", 14000, []string{"Robin Hobb"}, models.CategoryRoman, []string{"fitz", "castelcerf"}, []string{"assassin royal"}},
}

// popularKeywords is the generic popularity list: a combined title+saga+
// author text containing any of these earns a single flat bonus, applied
// only when no blockbuster bonus already fired.
var popularKeywords = []string{
	"harry potter", "one piece", "naruto", "dragon ball", "asterix", "tintin",
	"seigneur des anneaux", "lord of the rings", "game of thrones", "hobbit",
	"tolkien", "rowling", "stephen king", "agatha christie", "sherlock holmes",
	"hercule poirot", "star wars", "marvel", "batman", "spider man",
	"hunger games", "twilight", "divergente", "percy jackson", "eragon",
	"narnia", "dune", "fondation", "asimov", "witcher", "sorceleur",
	"millenium", "da vinci code", "dan brown", "jules verne", "petit prince",
	"death note", "attaque des titans", "attack on titan", "demon slayer",
	"jujutsu kaisen", "my hero academia", "fullmetal alchemist", "bleach",
	"fairy tail", "hunter x hunter", "berserk", "chainsaw man", "spy x family",
	"tokyo ghoul", "one punch man", "slam dunk", "vinland saga", "dragon quest",
	"lucky luke", "gaston lagaffe", "spirou", "schtroumpf", "thorgal",
	"blake et mortimer", "corto maltese", "largo winch",
}
