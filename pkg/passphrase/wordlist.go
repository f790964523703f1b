package passphrase

// words is the fixed list the generator draws from: 256 short, common,
// unambiguous English words, so each pick carries exactly eight bits of
// entropy and the default nine-word phrase carries 72.
var words = []string{
	"acorn", "actor", "adobe", "afford", "agent", "aisle", "alarm", "album",
	"alley", "almond", "alpine", "amber", "anchor", "angle", "ankle", "antler",
	"apple", "apron", "arch", "arrow", "aspen", "atlas", "attic", "autumn",
	"avenue", "awning", "bacon", "badge", "bagel", "baker", "bamboo", "banjo",
	"barley", "barn", "basil", "basket", "beach", "beacon", "beaver", "bell",
	"bench", "berry", "bicycle", "birch", "bishop", "bison", "blanket", "blossom",
	"bluff", "boat", "bonnet", "border", "bottle", "boulder", "bracket", "branch",
	"brass", "bread", "breeze", "brick", "bridge", "bronze", "brook", "broom",
	"bucket", "bundle", "burrow", "butter", "cabin", "cactus", "camel", "candle",
	"canoe", "canvas", "canyon", "carbon", "cargo", "carpet", "carrot", "castle",
	"cedar", "cellar", "chair", "chalk", "chapel", "cherry", "chess", "chimney",
	"cider", "cinder", "circle", "citrus", "clay", "cliff", "clock", "cloud",
	"clover", "cobalt", "cocoa", "column", "comet", "compass", "copper", "coral",
	"corner", "cotton", "cradle", "crane", "crater", "crayon", "creek", "cricket",
	"crystal", "curtain", "cypress", "daisy", "deer", "delta", "denim", "desk",
	"dew", "diamond", "dome", "donkey", "door", "dragon", "drum", "dune",
	"eagle", "easel", "echo", "elbow", "elder", "elm", "ember", "engine",
	"fable", "falcon", "feather", "fern", "fiddle", "field", "fig", "finch",
	"fjord", "flint", "flute", "fog", "forest", "fossil", "fountain", "fox",
	"frost", "garden", "garnet", "gazebo", "geyser", "ginger", "glacier", "glade",
	"goose", "granite", "grape", "gravel", "grove", "hammer", "harbor", "harvest",
	"hazel", "heron", "hill", "hinge", "honey", "horizon", "hunter", "igloo",
	"inlet", "iron", "island", "ivory", "jacket", "jade", "jasper", "jigsaw",
	"juniper", "kayak", "kettle", "kiln", "kiosk", "kitten", "knoll", "ladder",
	"lagoon", "lantern", "lava", "lemon", "lilac", "lily", "linen", "lobster",
	"locket", "lodge", "lumber", "magnet", "mallet", "mango", "mantle", "maple",
	"marble", "meadow", "mesa", "mint", "mirror", "morning", "mosaic", "moss",
	"mountain", "mulberry", "mustard", "nectar", "nickel", "north", "oasis", "ocean",
	"olive", "onion", "opal", "orchard", "otter", "oven", "oxen", "paddle",
	"pagoda", "palm", "pansy", "parka", "pearl", "pebble", "pepper", "pine",
	"pirate", "pistachio", "planet", "plank", "plum", "pond", "poplar", "prairie",
	"quartz", "quill", "raft", "raven", "reef", "ridge", "river", "walnut",
}
