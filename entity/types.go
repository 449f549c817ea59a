package entity

import "time"

// Dataset is a harvestable data collection description.
type Dataset struct {
	ID                 string         `yaml:"uid"`
	Title              []string       `yaml:"title"`
	Description        []string       `yaml:"description"`
	Keywords           []string       `yaml:"keywords"`
	Issued             *time.Time     `yaml:"issued"`
	Modified           *time.Time     `yaml:"modified"`
	Created            *time.Time     `yaml:"created"`
	VersionInfo        string         `yaml:"version_info"`
	AccessRights       string         `yaml:"access_rights"`
	AccrualPeriodicity string         `yaml:"accrual_periodicity"`
	Pages              []string       `yaml:"pages"`
	Identifiers        []Identifier   `yaml:"identifiers"`
	Temporal           []PeriodOfTime `yaml:"temporal"`
	Spatial            []Location     `yaml:"spatial"`
	Publisher          []LinkedEntity `yaml:"publisher"`
	ContactPoint       []LinkedEntity `yaml:"contact_point"`
	Distribution       []LinkedEntity `yaml:"distribution"`
	Category           []LinkedEntity `yaml:"category"`
	IsPartOf           []LinkedEntity `yaml:"is_part_of"`
}

func (d *Dataset) UID() string      { return d.ID }
func (d *Dataset) TypeTag() TypeTag { return TypeDataset }
func (d *Dataset) References() []LinkedEntity {
	return refs(nil, d.Publisher, d.ContactPoint, d.Distribution, d.Category, d.IsPartOf)
}

// Distribution is a concrete access channel for a dataset.
type Distribution struct {
	ID          string         `yaml:"uid"`
	Title       []string       `yaml:"title"`
	Description []string       `yaml:"description"`
	Format      string         `yaml:"format"`
	License     string         `yaml:"license"`
	Issued      *time.Time     `yaml:"issued"`
	Modified    *time.Time     `yaml:"modified"`
	DownloadURL []string       `yaml:"download_url"`
	AccessURL   []LinkedEntity `yaml:"access_url"`
	DataPolicy  []string       `yaml:"data_policy"`
}

func (d *Distribution) UID() string      { return d.ID }
func (d *Distribution) TypeTag() TypeTag { return TypeDistribution }
func (d *Distribution) References() []LinkedEntity {
	return refs(nil, d.AccessURL)
}

// WebService is a machine-actionable service exposing data.
type WebService struct {
	ID            string         `yaml:"uid"`
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	Keywords      []string       `yaml:"keywords"`
	License       string         `yaml:"license"`
	EntryPoint    string         `yaml:"entry_point"`
	Documentation []string       `yaml:"documentation"`
	Issued        *time.Time     `yaml:"issued"`
	Modified      *time.Time     `yaml:"modified"`
	Temporal      []PeriodOfTime `yaml:"temporal"`
	Spatial       []Location     `yaml:"spatial"`
	Provider      []LinkedEntity `yaml:"provider"`
	ContactPoint  []LinkedEntity `yaml:"contact_point"`
	Operations    []LinkedEntity `yaml:"operations"`
	Category      []LinkedEntity `yaml:"category"`
	ServesDataset []LinkedEntity `yaml:"serves_dataset"`
}

func (w *WebService) UID() string      { return w.ID }
func (w *WebService) TypeTag() TypeTag { return TypeWebService }
func (w *WebService) References() []LinkedEntity {
	return refs(nil, w.Provider, w.ContactPoint, w.Operations, w.Category, w.ServesDataset)
}

// Operation is a parameterized endpoint of a web service.
type Operation struct {
	ID       string      `yaml:"uid"`
	Method   string      `yaml:"method"`
	Template string      `yaml:"template"`
	Params   []Parameter `yaml:"params"`
}

func (o *Operation) UID() string                { return o.ID }
func (o *Operation) TypeTag() TypeTag           { return TypeOperation }
func (o *Operation) References() []LinkedEntity { return nil }

// Organization is a legal entity providing or owning resources.
type Organization struct {
	ID           string         `yaml:"uid"`
	LegalName    []string       `yaml:"legal_name"`
	Acronym      string         `yaml:"acronym"`
	URL          string         `yaml:"url"`
	LogoURL      string         `yaml:"logo_url"`
	LeiCode      string         `yaml:"lei_code"`
	Email        []string       `yaml:"email"`
	Telephone    []string       `yaml:"telephone"`
	Address      Address        `yaml:"address"`
	Identifiers  []Identifier   `yaml:"identifiers"`
	ContactPoint []LinkedEntity `yaml:"contact_point"`
	Owns         []LinkedEntity `yaml:"owns"`
	MemberOf     []LinkedEntity `yaml:"member_of"`
}

func (o *Organization) UID() string      { return o.ID }
func (o *Organization) TypeTag() TypeTag { return TypeOrganization }
func (o *Organization) References() []LinkedEntity {
	return refs(nil, o.ContactPoint, o.Owns, o.MemberOf)
}

// ContactPoint is a role-based point of contact.
type ContactPoint struct {
	ID        string         `yaml:"uid"`
	Role      string         `yaml:"role"`
	Email     []string       `yaml:"email"`
	Telephone []string       `yaml:"telephone"`
	Agents    []LinkedEntity `yaml:"agents"`
}

func (c *ContactPoint) UID() string      { return c.ID }
func (c *ContactPoint) TypeTag() TypeTag { return TypeContactPoint }
func (c *ContactPoint) References() []LinkedEntity {
	return refs(nil, c.Agents)
}

// Person is an individual agent.
type Person struct {
	ID          string         `yaml:"uid"`
	GivenName   string         `yaml:"given_name"`
	FamilyName  string         `yaml:"family_name"`
	Email       []string       `yaml:"email"`
	Telephone   []string       `yaml:"telephone"`
	CVURL       string         `yaml:"cv_url"`
	Address     Address        `yaml:"address"`
	Identifiers []Identifier   `yaml:"identifiers"`
	Affiliation []LinkedEntity `yaml:"affiliation"`
}

func (p *Person) UID() string      { return p.ID }
func (p *Person) TypeTag() TypeTag { return TypePerson }
func (p *Person) References() []LinkedEntity {
	return refs(nil, p.Affiliation)
}

// Facility is a physical research installation.
type Facility struct {
	ID           string         `yaml:"uid"`
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	Type         string         `yaml:"type"`
	Keywords     []string       `yaml:"keywords"`
	Pages        []string       `yaml:"pages"`
	Address      Address        `yaml:"address"`
	Spatial      []Location     `yaml:"spatial"`
	ContactPoint []LinkedEntity `yaml:"contact_point"`
	IsPartOf     []LinkedEntity `yaml:"is_part_of"`
	Category     []LinkedEntity `yaml:"category"`
}

func (f *Facility) UID() string      { return f.ID }
func (f *Facility) TypeTag() TypeTag { return TypeFacility }
func (f *Facility) References() []LinkedEntity {
	return refs(nil, f.ContactPoint, f.IsPartOf, f.Category)
}

// Equipment is an instrument installed at a facility.
type Equipment struct {
	ID           string         `yaml:"uid"`
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	Type         string         `yaml:"type"`
	Manufacturer string         `yaml:"manufacturer"`
	SerialNumber string         `yaml:"serial_number"`
	Resolution   string         `yaml:"resolution"`
	SamplePeriod string         `yaml:"sample_period"`
	Spatial      []Location     `yaml:"spatial"`
	ContactPoint []LinkedEntity `yaml:"contact_point"`
	Facility     []LinkedEntity `yaml:"facility"`
	Category     []LinkedEntity `yaml:"category"`
}

func (e *Equipment) UID() string      { return e.ID }
func (e *Equipment) TypeTag() TypeTag { return TypeEquipment }
func (e *Equipment) References() []LinkedEntity {
	return refs(nil, e.ContactPoint, e.Facility, e.Category)
}

// Service is a human-mediated (governance) service.
type Service struct {
	ID           string         `yaml:"uid"`
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	Type         string         `yaml:"type"`
	Pages        []string       `yaml:"pages"`
	Temporal     []PeriodOfTime `yaml:"temporal"`
	Spatial      []Location     `yaml:"spatial"`
	Provider     []LinkedEntity `yaml:"provider"`
	ContactPoint []LinkedEntity `yaml:"contact_point"`
	Category     []LinkedEntity `yaml:"category"`
}

func (s *Service) UID() string      { return s.ID }
func (s *Service) TypeTag() TypeTag { return TypeService }
func (s *Service) References() []LinkedEntity {
	return refs(nil, s.Provider, s.ContactPoint, s.Category)
}

// SoftwareApplication is a runnable software product.
type SoftwareApplication struct {
	ID           string         `yaml:"uid"`
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	Keywords     []string       `yaml:"keywords"`
	LicenseURL   string         `yaml:"license_url"`
	DownloadURL  string         `yaml:"download_url"`
	Requirements string         `yaml:"requirements"`
	ContactPoint []LinkedEntity `yaml:"contact_point"`
	Category     []LinkedEntity `yaml:"category"`
}

func (s *SoftwareApplication) UID() string      { return s.ID }
func (s *SoftwareApplication) TypeTag() TypeTag { return TypeSoftwareApplication }
func (s *SoftwareApplication) References() []LinkedEntity {
	return refs(nil, s.ContactPoint, s.Category)
}

// SoftwareSourceCode is a source repository description.
type SoftwareSourceCode struct {
	ID             string         `yaml:"uid"`
	Name           string         `yaml:"name"`
	Description    string         `yaml:"description"`
	Keywords       []string       `yaml:"keywords"`
	LicenseURL     string         `yaml:"license_url"`
	CodeRepository string         `yaml:"code_repository"`
	Language       string         `yaml:"language"`
	Version        string         `yaml:"version"`
	ContactPoint   []LinkedEntity `yaml:"contact_point"`
	Category       []LinkedEntity `yaml:"category"`
}

func (s *SoftwareSourceCode) UID() string      { return s.ID }
func (s *SoftwareSourceCode) TypeTag() TypeTag { return TypeSoftwareSourceCode }
func (s *SoftwareSourceCode) References() []LinkedEntity {
	return refs(nil, s.ContactPoint, s.Category)
}

// Category is a SKOS concept used as a harvestable set.
type Category struct {
	ID          string         `yaml:"uid"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	InScheme    LinkedEntity   `yaml:"in_scheme"`
	Narrower    []LinkedEntity `yaml:"narrower"`
}

func (c *Category) UID() string      { return c.ID }
func (c *Category) TypeTag() TypeTag { return TypeCategory }
func (c *Category) References() []LinkedEntity {
	return refs(nil, []LinkedEntity{c.InScheme}, c.Narrower)
}

// CategoryScheme is a SKOS concept scheme grouping categories.
type CategoryScheme struct {
	ID          string `yaml:"uid"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Homepage    string `yaml:"homepage"`
	LogoURL     string `yaml:"logo_url"`
}

func (c *CategoryScheme) UID() string                { return c.ID }
func (c *CategoryScheme) TypeTag() TypeTag           { return TypeCategoryScheme }
func (c *CategoryScheme) References() []LinkedEntity { return nil }
