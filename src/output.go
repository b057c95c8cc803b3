package fvavg

import "fmt"

/*
FVAvg output workbook (spec.md §6): one sheet for the zeroed raw
sequence, four sheets per breath (not-normalized time bin, normalized
time bin, volume bin, original), two side-by-side comparison sheets,
a tidal-volume/time summary, and the two aggregated-loop sheets (the
"Avg Vol Bin Data" one feeds the Consolidator).
*/

// WriteResult writes a full FVAvg result workbook to path. When maxLoop
// is non-nil, an additional sheet compares the time-bin aggregated loop
// against the reference (Vol, Flow) curve (the supplemented max-loop
// comparison feature).
func WriteResult(result Result, path string, maxLoop *MaxLoop) error {
	f := NewWorkbook()

	if _, err := WriteFloatSheet(f, "Zeroed_Raw_Data",
		[]string{"Time", "Vol", "Flow"},
		[][]float64{result.ZeroedTime, result.ZeroedVol, result.ZeroedFlow}); err != nil {
		return err
	}

	for i, br := range result.Breaths {
		if _, err := WriteFloatSheet(f, fmt.Sprintf("Not Normalized Time Bin Breath %d", i),
			[]string{"Insp_Time", "Insp_Vol", "Insp_Flow", "Exp_Time", "Exp_Vol", "Exp_Flow"},
			[][]float64{
				br.NotNormalizedTimeBinInsp.Time, br.NotNormalizedTimeBinInsp.Vol, br.NotNormalizedTimeBinInsp.Flow,
				br.NotNormalizedTimeBinExp.Time, br.NotNormalizedTimeBinExp.Vol, br.NotNormalizedTimeBinExp.Flow,
			}); err != nil {
			return err
		}

		if _, err := WriteFloatSheet(f, fmt.Sprintf("Normalized Time Bin Breath %d", i),
			[]string{"Insp_Time", "Insp_Vol", "Insp_Flow", "Exp_Time", "Exp_Vol", "Exp_Flow"},
			[][]float64{
				br.TimeBinInsp.Time, br.TimeBinInsp.Vol, br.TimeBinInsp.Flow,
				br.TimeBinExp.Time, br.TimeBinExp.Vol, br.TimeBinExp.Flow,
			}); err != nil {
			return err
		}

		if _, err := WriteFloatSheet(f, fmt.Sprintf("Volume Bin Breath %d", i),
			[]string{"Insp_Vol", "Insp_Flow", "Exp_Vol", "Exp_Flow"},
			[][]float64{
				br.VolumeBinInsp.Vol, br.VolumeBinInsp.Flow,
				br.VolumeBinExp.Vol, br.VolumeBinExp.Flow,
			}); err != nil {
			return err
		}

		if _, err := WriteFloatSheet(f, fmt.Sprintf("Original Breath %d", i),
			[]string{"Insp_Time", "Insp_Vol", "Insp_Flow", "Exp_Time", "Exp_Vol", "Exp_Flow"},
			[][]float64{
				br.OrigInsp.Time, br.OrigInsp.Vol, br.OrigInsp.Flow,
				br.OrigExp.Time, br.OrigExp.Vol, br.OrigExp.Flow,
			}); err != nil {
			return err
		}
	}

	tbinHeaders := []string{}
	tbinCols := [][]float64{}
	vbinHeaders := []string{}
	vbinCols := [][]float64{}
	for i, br := range result.Breaths {
		tbinHeaders = append(tbinHeaders,
			fmt.Sprintf("InspVol_%d", i), fmt.Sprintf("ExpVol_%d", i),
			fmt.Sprintf("InspFlow_%d", i), fmt.Sprintf("ExpFlow_%d", i))
		tbinCols = append(tbinCols, br.TimeBinInsp.Vol, br.TimeBinExp.Vol, br.TimeBinInsp.Flow, br.TimeBinExp.Flow)

		vbinHeaders = append(vbinHeaders,
			fmt.Sprintf("InspVol_%d", i), fmt.Sprintf("ExpVol_%d", i),
			fmt.Sprintf("InspFlow_%d", i), fmt.Sprintf("ExpFlow_%d", i))
		vbinCols = append(vbinCols, br.VolumeBinInsp.Vol, br.VolumeBinExp.Vol, br.VolumeBinInsp.Flow, br.VolumeBinExp.Flow)
	}
	tbinHeaders = append(tbinHeaders,
		"Avg_Insp_Vol", "Avg_Exp_Vol", "Avg_Insp_Flow", "Avg_Exp_Flow",
		"SEM(Insp_Vol)", "SEM(Exp_Vol)", "SEM(Insp_Flow)", "SEM(Exp_Flow)")
	tbinCols = append(tbinCols,
		result.TimeBin.InspVolMean, result.TimeBin.ExpVolMean, result.TimeBin.InspFlowMean, result.TimeBin.ExpFlowMean,
		result.TimeBin.InspVolSD, result.TimeBin.ExpVolSD, result.TimeBin.InspFlowSD, result.TimeBin.ExpFlowSD)
	if _, err := WriteFloatSheet(f, "Comparison_Purposes_tbin", tbinHeaders, tbinCols); err != nil {
		return err
	}

	vbinHeaders = append(vbinHeaders,
		"Avg_Insp_Vol", "Avg_Exp_Vol", "Avg_Insp_Flow", "Avg_Exp_Flow",
		"SEM(Insp_Vol)", "SEM(Exp_Vol)", "SEM(Insp_Flow)", "SEM(Exp_Flow)")
	vbinCols = append(vbinCols,
		result.VolumeBin.InspVolMean, result.VolumeBin.ExpVolMean, result.VolumeBin.InspFlowMean, result.VolumeBin.ExpFlowMean,
		result.VolumeBin.InspVolSD, result.VolumeBin.ExpVolSD, result.VolumeBin.InspFlowSD, result.VolumeBin.ExpFlowSD)
	if _, err := WriteFloatSheet(f, "Comparison_Purposes_vbin", vbinHeaders, vbinCols); err != nil {
		return err
	}

	tt := make([]float64, len(result.Breaths))
	vt := make([]float64, len(result.Breaths))
	ttExp := make([]float64, len(result.Breaths))
	vtExp := make([]float64, len(result.Breaths))
	for i, br := range result.Breaths {
		tt[i] = br.TtInsp
		vt[i] = br.VtInsp
		ttExp[i] = br.TtExp
		vtExp[i] = br.VtExp
	}
	if _, err := WriteFloatSheet(f, "Tidal Volume and Time Data",
		[]string{"Tt_Insp", "Vt_Insp", "Tt_Exp", "Vt_Exp"},
		[][]float64{tt, vt, ttExp, vtExp}); err != nil {
		return err
	}

	if _, err := WriteFloatSheet(f, "Avg Time Bin Data",
		[]string{
			"Avg_Insp_Vol_Graph", "Avg_Insp_Flow_Graph", "Avg_Exp_Vol_Graph", "Avg_Exp_Flow_Graph",
			"Insp_Vol_SD", "Insp_Flow_SD", "Exp_Vol_SD", "Exp_Flow_SD",
		},
		[][]float64{
			result.TimeBin.InspVolMean, result.TimeBin.InspFlowMean, result.TimeBin.ExpVolMean, result.TimeBin.ExpFlowMean,
			result.TimeBin.InspVolSD, result.TimeBin.InspFlowSD, result.TimeBin.ExpVolSD, result.TimeBin.ExpFlowSD,
		}); err != nil {
		return err
	}

	if _, err := WriteFloatSheet(f, "Avg Vol Bin Data",
		[]string{
			"Avg_Insp_Vol_Graph", "Avg_Insp_Flow_Graph", "Avg_Exp_Vol_Graph", "Avg_Exp_Flow_Graph",
			"Insp_Flow_SD", "Exp_Flow_SD",
		},
		[][]float64{
			result.VolumeBin.InspVolMean, result.VolumeBin.InspFlowMean, result.VolumeBin.ExpVolMean, result.VolumeBin.ExpFlowMean,
			result.VolumeBin.InspFlowSD, result.VolumeBin.ExpFlowSD,
		}); err != nil {
		return err
	}

	if maxLoop != nil {
		avgVol, avgFlow, maxVol, maxFlow := CompareMaxLoop(result.TimeBin, *maxLoop)
		if _, err := WriteFloatSheet(f, "Max_Loop_Comparison",
			[]string{"Avg_Vol", "Avg_Flow", "Max_Vol", "Max_Flow"},
			[][]float64{avgVol, avgFlow, maxVol, maxFlow}); err != nil {
			return err
		}
	}

	return Save(f, path)
}
