package submission

const ResourceOther = "Other"

var (
	Branches = []string{"CSE", "ECE", "Mechanical", "IT", "Other"}

	Years = []string{"1st", "2nd", "3rd", "4th"}

	Categories = []string{
		"Autonomous Robots",
		"Robotic Manipulation",
		"Human-Robot Interaction",
		"Industrial Automation",
		"Bio-Inspired Robotics",
		"Aerial Robotics",
		"Computer Vision & AI",
		"Other",
	}

	Durations = []string{"1-3 months", "3-6 months", "6-12 months", "12+ months"}

	Resources = []string{
		"Drone",
		"Robotic Dog",
		"Robotic Arm Kit",
		"Robotic Hands",
		"Arduino & Development Kits",
		"Jetson Nano AI Platform",
		"3D Printer",
		"Sensors & Actuators",
		"Workshop Space",
		ResourceOther,
	}
)

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func IsBranch(v string) bool   { return contains(Branches, v) }
func IsYear(v string) bool     { return contains(Years, v) }
func IsCategory(v string) bool { return contains(Categories, v) }
func IsDuration(v string) bool { return contains(Durations, v) }
func IsResource(v string) bool { return contains(Resources, v) }
