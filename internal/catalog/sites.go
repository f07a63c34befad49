package catalog

import "github.com/timmy/reconlens/internal/domain"

// builtin is the fixed site list: the Seven Wonders first, then regional sites.
var builtin = []domain.Site{
	{Slug: "great-pyramid-of-giza", Name: "Great Pyramid of Giza", Region: "Egypt", Blurb: "Old Kingdom pyramid complex at Giza."},
	{Slug: "hanging-gardens-of-babylon", Name: "Hanging Gardens of Babylon", Region: "Mesopotamia", Blurb: "Legendary terraced gardens of ancient Babylon."},
	{Slug: "statue-of-zeus-at-olympia", Name: "Statue of Zeus at Olympia", Region: "Greece", Blurb: "Giant seated statue in the sanctuary at Olympia."},
	{Slug: "temple-of-artemis-at-ephesus", Name: "Temple of Artemis at Ephesus", Region: "Turkey", Blurb: "Huge Ionic temple dedicated to Artemis."},
	{Slug: "mausoleum-at-halicarnassus", Name: "Mausoleum at Halicarnassus", Region: "Turkey", Blurb: "Grand tomb built for Mausolus."},
	{Slug: "colossus-of-rhodes", Name: "Colossus of Rhodes", Region: "Greece", Blurb: "Bronze statue of Helios at the harbor of Rhodes."},
	{Slug: "lighthouse-of-alexandria", Name: "Lighthouse of Alexandria", Region: "Egypt", Blurb: "Pharos lighthouse that guided ships into Alexandria."},
	{Slug: "stonehenge", Name: "Stonehenge", Region: "United Kingdom", Blurb: "Neolithic stone circle on Salisbury Plain."},
	{Slug: "avebury-henge", Name: "Avebury Henge", Region: "United Kingdom", Blurb: "Massive Neolithic henge with stone circles."},
	{Slug: "skara-brae", Name: "Skara Brae", Region: "United Kingdom", Blurb: "Neolithic village in Orkney."},
	{Slug: "hadrians-wall", Name: "Hadrian's Wall", Region: "United Kingdom", Blurb: "Roman frontier wall across northern Britain."},
	{Slug: "roman-colosseum", Name: "Roman Colosseum", Region: "Italy", Blurb: "Flavian amphitheater used for public spectacles."},
	{Slug: "roman-forum", Name: "Roman Forum", Region: "Italy", Blurb: "Civic and religious center of ancient Rome."},
	{Slug: "pompeii", Name: "Pompeii", Region: "Italy", Blurb: "Roman city buried by the eruption of Vesuvius."},
	{Slug: "pantheon-rome", Name: "Pantheon (Rome)", Region: "Italy", Blurb: "Roman temple and later church with a giant dome."},
	{Slug: "circus-maximus", Name: "Circus Maximus", Region: "Italy", Blurb: "Large Roman chariot-racing stadium."},
	{Slug: "acropolis-of-athens", Name: "Acropolis of Athens", Region: "Greece", Blurb: "Fortified hill with major classical temples."},
	{Slug: "parthenon", Name: "Parthenon", Region: "Greece", Blurb: "Temple of Athena on the Athenian Acropolis."},
	{Slug: "palace-of-knossos", Name: "Palace of Knossos", Region: "Greece", Blurb: "Minoan palace complex on Crete."},
	{Slug: "akrotiri-thera", Name: "Akrotiri (Thera)", Region: "Greece", Blurb: "Bronze Age town buried by volcanic ash."},
	{Slug: "troy", Name: "Troy", Region: "Turkey", Blurb: "Layered Bronze Age and classical city site."},
	{Slug: "mycenae", Name: "Mycenae", Region: "Greece", Blurb: "Citadel of the Mycenaean civilization."},
	{Slug: "delphi-sanctuary", Name: "Delphi Sanctuary", Region: "Greece", Blurb: "Pan-Hellenic sanctuary of Apollo."},
	{Slug: "theatre-of-epidaurus", Name: "Theatre of Epidaurus", Region: "Greece", Blurb: "Famous ancient Greek theater."},
	{Slug: "pergamon-acropolis", Name: "Pergamon Acropolis", Region: "Turkey", Blurb: "Hellenistic and Roman hilltop city complex."},
	{Slug: "carthage", Name: "Carthage", Region: "Tunisia", Blurb: "Phoenician and Punic city-state near modern Tunis."},
	{Slug: "leptis-magna", Name: "Leptis Magna", Region: "Libya", Blurb: "Major Roman city on North Africa's coast."},
	{Slug: "palmyra", Name: "Palmyra", Region: "Syria", Blurb: "Oasis city with Roman-period colonnades and temples."},
	{Slug: "jerash-gerasa", Name: "Jerash (Gerasa)", Region: "Jordan", Blurb: "Well-preserved Greco-Roman city."},
	{Slug: "petra", Name: "Petra", Region: "Jordan", Blurb: "Nabataean city carved into rose-red rock."},
	{Slug: "persepolis", Name: "Persepolis", Region: "Iran", Blurb: "Ceremonial capital of the Achaemenid Empire."},
	{Slug: "ziggurat-of-ur", Name: "Ziggurat of Ur", Region: "Iraq", Blurb: "Monumental stepped temple platform at Ur."},
	{Slug: "babylon", Name: "Babylon", Region: "Iraq", Blurb: "Ancient Mesopotamian imperial city."},
	{Slug: "memphis-ancient-egypt", Name: "Memphis (Ancient Egypt)", Region: "Egypt", Blurb: "Ancient capital near Saqqara and Giza."},
	{Slug: "karnak-temple", Name: "Karnak Temple", Region: "Egypt", Blurb: "Vast temple complex at Thebes."},
	{Slug: "luxor-temple", Name: "Luxor Temple", Region: "Egypt", Blurb: "New Kingdom temple in ancient Thebes."},
	{Slug: "abu-simbel", Name: "Abu Simbel", Region: "Egypt", Blurb: "Rock-cut temples of Ramesses II."},
	{Slug: "saqqara-necropolis", Name: "Saqqara Necropolis", Region: "Egypt", Blurb: "Burial complex including the Step Pyramid."},
	{Slug: "great-zimbabwe", Name: "Great Zimbabwe", Region: "Zimbabwe", Blurb: "Stone-built medieval city of southern Africa."},
	{Slug: "aksum-obelisks", Name: "Aksum Obelisks", Region: "Ethiopia", Blurb: "Monumental stelae from the Kingdom of Aksum."},
	{Slug: "lalibela-churches", Name: "Lalibela Churches", Region: "Ethiopia", Blurb: "Rock-hewn medieval churches."},
	{Slug: "mohenjo-daro", Name: "Mohenjo-daro", Region: "Pakistan", Blurb: "Major Indus Valley urban center."},
	{Slug: "harappa", Name: "Harappa", Region: "Pakistan", Blurb: "Key city of the Indus civilization."},
	{Slug: "nalanda-mahavihara", Name: "Nalanda Mahavihara", Region: "India", Blurb: "Major Buddhist monastic university complex."},
	{Slug: "sigiriya", Name: "Sigiriya", Region: "Sri Lanka", Blurb: "Rock fortress and palace complex."},
	{Slug: "borobudur", Name: "Borobudur", Region: "Indonesia", Blurb: "Large Buddhist monument with terraces and stupas."},
	{Slug: "prambanan", Name: "Prambanan", Region: "Indonesia", Blurb: "Hindu temple complex in Central Java."},
	{Slug: "angkor-wat", Name: "Angkor Wat", Region: "Cambodia", Blurb: "Vast Khmer temple complex."},
	{Slug: "angkor-thom", Name: "Angkor Thom", Region: "Cambodia", Blurb: "Khmer walled city including Bayon."},
	{Slug: "bagan", Name: "Bagan", Region: "Myanmar", Blurb: "Plain with thousands of historic Buddhist monuments."},
	{Slug: "ayutthaya", Name: "Ayutthaya", Region: "Thailand", Blurb: "Former Siamese capital and temple city."},
	{Slug: "sanchi-stupa", Name: "Sanchi Stupa", Region: "India", Blurb: "Ancient Buddhist stupa complex."},
	{Slug: "terracotta-army-mausoleum", Name: "Terracotta Army Mausoleum", Region: "China", Blurb: "Mausoleum complex of Qin Shi Huang."},
	{Slug: "machu-picchu", Name: "Machu Picchu", Region: "Peru", Blurb: "Inca mountain citadel."},
	{Slug: "cusco-inca-capital", Name: "Cusco (Inca Capital)", Region: "Peru", Blurb: "Historic capital of the Inca Empire."},
	{Slug: "teotihuacan", Name: "Teotihuacan", Region: "Mexico", Blurb: "Planned ancient city with pyramids."},
	{Slug: "chichen-itza", Name: "Chichen Itza", Region: "Mexico", Blurb: "Maya city with temples and observatories."},
	{Slug: "tulum", Name: "Tulum", Region: "Mexico", Blurb: "Walled Maya coastal city."},
	{Slug: "palenque", Name: "Palenque", Region: "Mexico", Blurb: "Classic Maya city in Chiapas."},
	{Slug: "tikal", Name: "Tikal", Region: "Guatemala", Blurb: "Major Maya city with towering temples."},
	{Slug: "copan", Name: "Copan", Region: "Honduras", Blurb: "Maya city known for carved monuments."},
	{Slug: "mesa-verde-cliff-palace", Name: "Mesa Verde Cliff Palace", Region: "USA", Blurb: "Ancestral Pueblo cliff dwellings."},
	{Slug: "cahokia-mounds", Name: "Cahokia Mounds", Region: "USA", Blurb: "Mississippian urban and ceremonial center."},
	{Slug: "chan-chan", Name: "Chan Chan", Region: "Peru", Blurb: "Adobe capital of the Chimu kingdom."},
}
