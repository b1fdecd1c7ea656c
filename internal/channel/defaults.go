package channel

// Curated target-curve corrections, measured for the current speaker setup.
var (
	frontCorrections = []CurvePoint{
		Pt(20, 9.5), Pt(150, -1), Pt(500, 0), Pt(2500, -5),
		Pt(3600, -2), Pt(6200, -3), Pt(11000, 0), Pt(15000, -2),
	}

	centerCorrections = []CurvePoint{
		Pt(20, 0), Pt(100, 0), Pt(170, -0.5), Pt(295, 1.5), Pt(570, -4),
		Pt(2040, -4), mustParseCurvePoint("{3565.00, -3.5}"), Pt(6725, -7), Pt(10850, 0), Pt(15485, -3.5),
	}

	rearCorrections = []CurvePoint{
		Pt(20, 0), Pt(100, 5), Pt(200, 2), Pt(400, 0), Pt(650, 0.5),
		Pt(1500, -0.5), Pt(4000, 0), Pt(7000, -4), Pt(12000, -0.5), Pt(20000, 0),
	}
)

// Default returns the built-in override table. Each call builds a fresh table
// with identical contents.
func Default() *Table {
	return NewTable(map[string]ChannelOverride{
		"FL": {
			CrossoverHz:       Int(80),
			MidrangeComp:      Bool(false),
			Corrections:       frontCorrections,
			CorrectionLimitHz: Float(1000),
		},
		"FR": {
			CrossoverHz:       Int(80),
			MidrangeComp:      Bool(false),
			Corrections:       frontCorrections,
			CorrectionLimitHz: Float(1000),
		},
		"C": {
			CrossoverHz:       Int(80),
			Corrections:       centerCorrections,
			CorrectionLimitHz: Float(1000),
		},
		"SRA": {
			CrossoverHz:       Int(80),
			Corrections:       rearCorrections,
			CorrectionLimitHz: Float(20000),
		},
		"SLA": {
			CrossoverHz:       Int(80),
			Corrections:       rearCorrections,
			CorrectionLimitHz: Float(20000),
		},
		"SW1": {
			LevelDB: Float(3.0),
		},
	})
}
