package inventory

// File is the parsed content of one inventory file.
//
// Devices may be listed at the top level, grouped per site, or both:
//
//	devices:
//	  - device_hostname: srv-db01
//	sites:
//	  - name: Austin
//	    devices:
//	      - device_hostname: aam-ws-001
type File struct {
	Devices []Record `yaml:"devices" json:"devices"`
	Sites   []Site   `yaml:"sites" json:"sites"`
}

// Site groups records under a site name.
type Site struct {
	Name    string   `yaml:"name" json:"name"`
	Devices []Record `yaml:"devices" json:"devices"`
}

// Record is one device row as written in the inventory.
type Record struct {
	ID              string   `yaml:"id" json:"id"`
	SiteName        string   `yaml:"site_name" json:"site_name"`
	Hostname        string   `yaml:"device_hostname" json:"device_hostname"`
	Description     string   `yaml:"description" json:"description"`
	LastUser        string   `yaml:"last_user" json:"last_user"`
	LastSeen        string   `yaml:"last_seen" json:"last_seen"`
	DeviceType      string   `yaml:"device_type" json:"device_type"`
	DeviceModel     string   `yaml:"device_model" json:"device_model"`
	OperatingSystem string   `yaml:"operating_system" json:"operating_system"`
	SerialNumber    string   `yaml:"serial_number" json:"serial_number"`
	CPU             string   `yaml:"device_cpu" json:"device_cpu"`
	Vendor          string   `yaml:"vendor" json:"vendor"`
	MACAddresses    []string `yaml:"mac_addresses" json:"mac_addresses"`
}

// empty reports whether r carries no data at all (blank spreadsheet rows).
func (r Record) empty() bool {
	return r.ID == "" && r.SiteName == "" && r.Hostname == "" && r.Description == "" &&
		r.LastUser == "" && r.LastSeen == "" && r.DeviceType == "" && r.DeviceModel == "" &&
		r.OperatingSystem == "" && r.SerialNumber == "" && r.CPU == "" && r.Vendor == "" &&
		len(r.MACAddresses) == 0
}

// Len is the number of records across the top level and every site.
func (f *File) Len() int {
	n := len(f.Devices)
	for _, s := range f.Sites {
		n += len(s.Devices)
	}
	return n
}
