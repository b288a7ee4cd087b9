package geo

// Locality is one gazetteer entry: a named place with its coordinates and
// the counties that contain it. Alerts without geometry name counties in
// their area description, so the nearest locality's counties stand in for
// the user's position.
type Locality struct {
	Name     string
	Lat      float64
	Lon      float64
	Counties []string
}

// southDakotaGazetteer covers the cities and towns of the target region.
var southDakotaGazetteer = []Locality{
	{"Sioux Falls", 43.5446, -96.7311, []string{"Minnehaha", "Lincoln"}},
	{"Rapid City", 44.0805, -103.2310, []string{"Pennington"}},
	{"Aberdeen", 45.4647, -98.4864, []string{"Brown"}},
	{"Brookings", 44.3114, -96.7984, []string{"Brookings"}},
	{"Watertown", 44.9016, -97.1151, []string{"Codington"}},
	{"Pierre", 44.3683, -100.3510, []string{"Hughes"}},
	{"Yankton", 42.8711, -97.3973, []string{"Yankton"}},
	{"Huron", 44.3633, -98.2142, []string{"Beadle"}},
	{"Vermillion", 42.7794, -96.9292, []string{"Clay"}},
	{"Mitchell", 43.7097, -98.0298, []string{"Davison"}},
	{"Spearfish", 44.4908, -103.8594, []string{"Lawrence"}},
	{"Sturgis", 44.4097, -103.5091, []string{"Meade"}},
	{"Deadwood", 44.3767, -103.7296, []string{"Lawrence"}},
	{"Lead", 44.3512, -103.7652, []string{"Lawrence"}},
	{"Belle Fourche", 44.6714, -103.8521, []string{"Butte"}},
	{"Hot Springs", 43.4316, -103.4741, []string{"Fall River"}},
	{"Custer", 43.7694, -103.6019, []string{"Custer"}},
	{"Keystone", 43.8961, -103.4263, []string{"Pennington"}},
	{"Hill City", 43.9325, -103.5749, []string{"Pennington"}},
	{"Madison", 44.0061, -97.1139, []string{"Lake"}},
	{"Brandon", 43.5944, -96.5717, []string{"Minnehaha"}},
	{"Harrisburg", 43.4316, -96.6989, []string{"Lincoln"}},
	{"Tea", 43.8419, -96.8359, []string{"Lincoln"}},
	{"Dell Rapids", 43.8261, -96.7062, []string{"Minnehaha"}},
	{"Hartford", 43.6230, -96.9428, []string{"Minnehaha"}},
	{"Crooks", 43.6647, -96.8106, []string{"Minnehaha"}},
	{"Baltic", 43.7614, -96.7392, []string{"Minnehaha"}},
	{"Colton", 43.7875, -96.9267, []string{"Minnehaha"}},
	{"Valley Springs", 43.5833, -96.4653, []string{"Minnehaha"}},
	{"Lennox", 43.3547, -96.8928, []string{"Lincoln"}},
	{"Canton", 43.3008, -96.5928, []string{"Lincoln"}},
	{"Worthing", 43.3297, -96.7678, []string{"Lincoln"}},
	{"Parker", 43.3975, -97.1367, []string{"Turner"}},
	{"Marion", 43.4225, -97.2592, []string{"Turner"}},
	{"Freeman", 43.3525, -97.4392, []string{"Hutchinson"}},
	{"Menno", 43.2383, -97.5792, []string{"Hutchinson"}},
	{"Scotland", 43.1497, -97.7167, []string{"Bon Homme"}},
	{"Tyndall", 42.9942, -97.8628, []string{"Bon Homme"}},
	{"Springfield", 42.8542, -97.8967, []string{"Bon Homme"}},
	{"Wagner", 43.0797, -98.2939, []string{"Charles Mix"}},
	{"Lake Andes", 43.1567, -98.5406, []string{"Charles Mix"}},
	{"Platte", 43.3867, -98.8439, []string{"Charles Mix"}},
	{"Winner", 43.3767, -99.8567, []string{"Tripp"}},
	{"Gregory", 43.2325, -99.4306, []string{"Gregory"}},
	{"Armour", 43.3189, -98.3467, []string{"Douglas"}},
	{"Parkston", 43.3989, -97.9839, []string{"Hutchinson"}},
	{"Salem", 43.7242, -97.3839, []string{"McCook"}},
	{"Wessington Springs", 44.0792, -98.5697, []string{"Jerauld"}},
	{"Woonsocket", 44.0539, -98.2767, []string{"Sanborn"}},
	{"Howard", 44.0108, -97.5167, []string{"Miner"}},
	{"Alexandria", 43.6539, -97.7839, []string{"Hanson"}},
	{"Centerville", 43.1175, -96.9617, []string{"Turner"}},
	{"Viborg", 43.1739, -97.0839, []string{"Turner"}},
	{"Beresford", 43.0817, -96.7839, []string{"Union"}},
	{"Elk Point", 42.6839, -96.6839, []string{"Union"}},
	{"North Sioux City", 42.5275, -96.4839, []string{"Union"}},
}

// NearestLocality returns the gazetteer entry closest to the given
// position and its distance in kilometers. ok is false only when the
// gazetteer is empty.
func NearestLocality(lat, lon float64) (Locality, float64, bool) {
	var nearest Locality
	found := false
	closest := 0.0
	for _, loc := range southDakotaGazetteer {
		d := Haversine(lat, lon, loc.Lat, loc.Lon)
		if !found || d < closest {
			nearest = loc
			closest = d
			found = true
		}
	}
	return nearest, closest, found
}
